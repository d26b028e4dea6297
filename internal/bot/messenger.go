package bot

// Messenger is the capability the bot needs from the messaging system. The
// implementation owns delivery, addressing, and retries; the bot never
// looks behind this interface.
type Messenger interface {
	SendText(destination, text string) error
	SendTextWithAttachment(destination, text string, image []byte, imageName, imageFormat string) error
}
