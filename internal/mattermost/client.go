// Package mattermost implements the bot.Messenger interface on top of the
// official Mattermost API client. Inbound messages arrive over the websocket
// event stream; replies go out as posts in the originating direct channel.
package mattermost

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/mattermost/mattermost/server/public/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	requestTimeout = 30 * time.Second
	reconnectDelay = 5 * time.Second
)

// Handler receives one inbound direct message. destination is the channel to
// reply into.
type Handler func(ctx context.Context, destination, sender, message string)

// Client wraps the Mattermost API client for a single bot account.
type Client struct {
	api     *model.Client4
	wsURL   string
	botUser *model.User
	log     *logrus.Logger
}

// NewClient connects to the server and authenticates, preferring a bot token
// over username/password credentials.
func NewClient(serverURL, token, username, password string, log *logrus.Logger) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	api := model.NewAPIv4Client(serverURL)

	if token != "" {
		api.SetToken(token)
	} else {
		_, resp, err := api.Login(ctx, username, password)
		if err != nil {
			return nil, handleAPIError("login failed", err, resp)
		}
	}

	user, resp, err := api.GetMe(ctx, "")
	if err != nil {
		return nil, handleAPIError("failed to look up bot account", err, resp)
	}

	log.WithFields(logrus.Fields{
		"username": user.Username,
		"user_id":  user.Id,
	}).Info("authenticated with Mattermost")

	return &Client{
		api:     api,
		wsURL:   websocketURL(serverURL),
		botUser: user,
		log:     log,
	}, nil
}

// websocketURL derives the websocket endpoint from the HTTP server URL.
func websocketURL(serverURL string) string {
	switch {
	case strings.HasPrefix(serverURL, "https://"):
		return "wss://" + strings.TrimPrefix(serverURL, "https://")
	case strings.HasPrefix(serverURL, "http://"):
		return "ws://" + strings.TrimPrefix(serverURL, "http://")
	default:
		return "wss://" + serverURL
	}
}

// SendText posts a plain text reply into the given channel.
func (c *Client) SendText(destination, text string) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	post := &model.Post{
		ChannelId: destination,
		Message:   text,
	}
	_, resp, err := c.api.CreatePost(ctx, post)
	if err != nil {
		return handleAPIError("failed to create post", err, resp)
	}
	return nil
}

// SendTextWithAttachment uploads the image to the channel and posts the text
// with the file attached.
func (c *Client) SendTextWithAttachment(destination, text string, image []byte, imageName, imageFormat string) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	upload, resp, err := c.api.UploadFile(ctx, image, destination, imageName)
	if err != nil {
		return handleAPIError("failed to upload attachment", err, resp)
	}
	if len(upload.FileInfos) == 0 {
		return errors.New("file upload returned no file info")
	}

	post := &model.Post{
		ChannelId: destination,
		Message:   text,
		FileIds:   []string{upload.FileInfos[0].Id},
	}
	_, resp, err = c.api.CreatePost(ctx, post)
	if err != nil {
		return handleAPIError("failed to create post with attachment", err, resp)
	}
	return nil
}

// Listen consumes the websocket event stream and invokes handler for every
// direct message from another user. It reconnects after stream errors and
// returns only when ctx is cancelled.
func (c *Client) Listen(ctx context.Context, handler Handler) error {
	for {
		if err := c.listenOnce(ctx, handler); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.WithError(err).Warn("websocket connection lost, reconnecting")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(reconnectDelay):
		}
	}
}

func (c *Client) listenOnce(ctx context.Context, handler Handler) error {
	ws, err := model.NewWebSocketClient4(c.wsURL, c.api.AuthToken)
	if err != nil {
		return errors.Wrap(err, "failed to open websocket")
	}
	defer ws.Close()

	ws.Listen()
	c.log.WithField("url", c.wsURL).Info("listening for direct messages")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-ws.EventChannel:
			if !ok {
				if ws.ListenError != nil {
					return errors.Wrap(ws.ListenError, "websocket stream closed")
				}
				return errors.New("websocket stream closed")
			}
			c.dispatch(ctx, event, handler)
		}
	}
}

// dispatch filters one websocket event down to direct messages from other
// users and hands the post to the handler.
func (c *Client) dispatch(ctx context.Context, event *model.WebSocketEvent, handler Handler) {
	if event.EventType() != model.WebsocketEventPosted {
		return
	}
	data := event.GetData()
	if channelType, _ := data["channel_type"].(string); channelType != string(model.ChannelTypeDirect) {
		return
	}

	raw, _ := data["post"].(string)
	var post model.Post
	if err := json.Unmarshal([]byte(raw), &post); err != nil {
		c.log.WithError(err).Warn("failed to decode post from websocket event")
		return
	}
	if post.UserId == c.botUser.Id {
		return
	}

	c.log.WithFields(logrus.Fields{
		"channel_id": post.ChannelId,
		"user_id":    post.UserId,
	}).Debug("received direct message")

	handler(ctx, post.ChannelId, post.UserId, post.Message)
}

// handleAPIError folds the API error and HTTP status into one error value.
func handleAPIError(operation string, err error, resp *model.Response) error {
	if resp != nil {
		return errors.Wrapf(err, "%s (status code: %d)", operation, resp.StatusCode)
	}
	return errors.Wrap(err, operation)
}
