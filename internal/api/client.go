// Package api talks to the Widescreen backend. The backend is a small
// PHP service: responses are taken as-is, rendered text is sanitized,
// and write calls that the game does not depend on are best-effort.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/bpstudios/widescreen/internal/constants"
	"github.com/bpstudios/widescreen/internal/models"
)

// Client is the HTTP client for the backend. Safe for concurrent use.
type Client struct {
	base     string
	http     *http.Client
	limiter  *rate.Limiter
	logger   *zap.Logger
	sanitize *bluemonday.Policy
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the logger for request failures.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a client for the given base URL. An empty base falls back
// to the production backend. Requests are limited to 5 per second so
// once-a-second screens cannot hammer the service.
func New(base string, opts ...Option) *Client {
	if base == "" {
		base = constants.DefaultAPIBase
	}
	c := &Client{
		base:     base,
		http:     &http.Client{Timeout: 15 * time.Second},
		limiter:  rate.NewLimiter(rate.Limit(5), 5),
		logger:   zap.NewNop(),
		sanitize: bluemonday.StrictPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// clean strips any markup the backend lets through and decodes the
// entities the strict policy leaves behind.
func (c *Client) clean(s string) string {
	return html.UnescapeString(c.sanitize.Sanitize(s))
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	endpoint := c.base + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("backend request failed",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, text)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// puzzleDTO mirrors the backend's film-of-the-day row, which stores the
// five stills as separate columns.
type puzzleDTO struct {
	Title    string `json:"title"`
	Director string `json:"director"`
	Genre    string `json:"genre"`
	Pegi     string `json:"pegi"`
	Length   int    `json:"length"`
	Frame1   string `json:"frame1"`
	Frame2   string `json:"frame2"`
	Frame3   string `json:"frame3"`
	Frame4   string `json:"frame4"`
	Frame5   string `json:"frame5"`
	Poster   string `json:"poster"`
}

// PuzzleOfDay fetches the film for the given day id.
func (c *Client) PuzzleOfDay(ctx context.Context, dayID int) (models.PuzzleOfDay, error) {
	var dto puzzleDTO
	query := url.Values{"day": {strconv.Itoa(dayID)}}
	if err := c.get(ctx, "/puzzle", query, &dto); err != nil {
		return models.PuzzleOfDay{}, err
	}
	return models.PuzzleOfDay{
		DayID:          dayID,
		Title:          dto.Title,
		Director:       dto.Director,
		Genre:          dto.Genre,
		ContentRating:  dto.Pegi,
		RuntimeMinutes: dto.Length,
		Frames:         []string{dto.Frame1, dto.Frame2, dto.Frame3, dto.Frame4, dto.Frame5},
		Poster:         dto.Poster,
	}, nil
}

// AllTitles fetches every film title known to the backend, the source
// for guess suggestions.
func (c *Client) AllTitles(ctx context.Context) ([]string, error) {
	var titles []string
	if err := c.get(ctx, "/titles", nil, &titles); err != nil {
		return nil, err
	}
	return titles, nil
}

// SubmitRating records the player's score on the backend.
func (c *Client) SubmitRating(ctx context.Context, sub models.RatingSubmission) error {
	return c.post(ctx, "/rating", sub, nil)
}

// UpdateActivity publishes the rating to the friends activity feed.
func (c *Client) UpdateActivity(ctx context.Context, sub models.RatingSubmission) error {
	return c.post(ctx, "/activity", sub, nil)
}

// ShareRating sends the rating and activity updates in the background.
// The round is already over locally, so failures are only logged.
func (c *Client) ShareRating(sub models.RatingSubmission, shareWithFriends bool) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := c.SubmitRating(ctx, sub); err != nil {
			c.logger.Warn("rating upload failed", zap.String("title", sub.Title), zap.Error(err))
			return
		}
		if !shareWithFriends {
			return
		}
		if err := c.UpdateActivity(ctx, sub); err != nil {
			c.logger.Warn("activity update failed", zap.String("title", sub.Title), zap.Error(err))
		}
	}()
}

// UserIDExists asks the backend whether the id is already taken.
func (c *Client) UserIDExists(ctx context.Context, id string) (bool, error) {
	var result struct {
		Exists bool `json:"exists"`
	}
	if err := c.get(ctx, "/users/exists", url.Values{"id": {id}}, &result); err != nil {
		return false, err
	}
	return result.Exists, nil
}

// UserInfo fetches another player's public profile.
func (c *Client) UserInfo(ctx context.Context, id string) (models.UserInfo, error) {
	var info models.UserInfo
	if err := c.get(ctx, "/users/info", url.Values{"id": {id}}, &info); err != nil {
		return models.UserInfo{}, err
	}
	info.UserName = c.clean(info.UserName)
	return info, nil
}

// UploadProfile pushes the local profile so other players can view it.
func (c *Client) UploadProfile(ctx context.Context, info models.UserInfo) error {
	return c.post(ctx, "/users/profile", info, nil)
}

// Reviews fetches the editorial review feed.
func (c *Client) Reviews(ctx context.Context) ([]models.Review, error) {
	var reviews []models.Review
	if err := c.get(ctx, "/reviews", nil, &reviews); err != nil {
		return nil, err
	}
	for i := range reviews {
		reviews[i].Review = c.clean(reviews[i].Review)
	}
	return reviews, nil
}

// LatestReview fetches only the newest review, used for the home screen
// teaser and the review notification check.
func (c *Client) LatestReview(ctx context.Context) (models.Review, error) {
	var review models.Review
	if err := c.get(ctx, "/reviews/latest", nil, &review); err != nil {
		return models.Review{}, err
	}
	review.Review = c.clean(review.Review)
	return review, nil
}

// Posts fetches the community feed, newest first.
func (c *Client) Posts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := c.get(ctx, "/posts", nil, &posts); err != nil {
		return nil, err
	}
	for i := range posts {
		c.cleanPost(&posts[i])
	}
	return posts, nil
}

// LatestPost fetches only the newest community post.
func (c *Client) LatestPost(ctx context.Context) (models.Post, error) {
	var post models.Post
	if err := c.get(ctx, "/posts/latest", nil, &post); err != nil {
		return models.Post{}, err
	}
	c.cleanPost(&post)
	return post, nil
}

func (c *Client) cleanPost(p *models.Post) {
	p.CreatorName = c.clean(p.CreatorName)
	p.Title = c.clean(p.Title)
	p.Content = c.clean(p.Content)
	for i := range p.Comments {
		p.Comments[i].CreatorName = c.clean(p.Comments[i].CreatorName)
		p.Comments[i].Content = c.clean(p.Comments[i].Content)
	}
}

// NewPost is a community post submission.
type NewPost struct {
	CreatorID   string `json:"creatorID"`
	CreatorName string `json:"creatorName"`
	Title       string `json:"postTitle"`
	Content     string `json:"postContent"`
}

// SubmitPost publishes a community post.
func (c *Client) SubmitPost(ctx context.Context, post NewPost) error {
	return c.post(ctx, "/posts", post, nil)
}

type postReaction struct {
	PostID int    `json:"postID"`
	UserID string `json:"userID"`
}

// LikePost adds the user to a post's likers.
func (c *Client) LikePost(ctx context.Context, postID int, userID string) error {
	return c.post(ctx, "/posts/like", postReaction{PostID: postID, UserID: userID}, nil)
}

// DislikePost removes the user from a post's likers.
func (c *Client) DislikePost(ctx context.Context, postID int, userID string) error {
	return c.post(ctx, "/posts/dislike", postReaction{PostID: postID, UserID: userID}, nil)
}

// NewComment is a comment submission for a community post.
type NewComment struct {
	PostID      int    `json:"postID"`
	CreatorID   string `json:"creatorID"`
	CreatorName string `json:"creatorName"`
	Content     string `json:"commentContent"`
}

// SubmitComment adds a comment to a post.
func (c *Client) SubmitComment(ctx context.Context, comment NewComment) error {
	return c.post(ctx, "/posts/comment", comment, nil)
}

type chatQuery struct {
	SenderID   string `json:"senderID"`
	ReceiverID string `json:"receiverID"`
}

// Messages fetches the conversation between two players, oldest first.
func (c *Client) Messages(ctx context.Context, myID, contactID string) ([]models.Message, error) {
	var msgs []models.Message
	if err := c.post(ctx, "/messages/history", chatQuery{SenderID: myID, ReceiverID: contactID}, &msgs); err != nil {
		return nil, err
	}
	for i := range msgs {
		msgs[i].Text = c.clean(msgs[i].Text)
	}
	return msgs, nil
}

// SendMessage delivers a direct message.
func (c *Client) SendMessage(ctx context.Context, msg models.Message) error {
	return c.post(ctx, "/messages/send", msg, nil)
}

type activityQuery struct {
	FriendIDs []string `json:"friendIDs"`
}

// FriendActivity fetches each followed friend's latest shared rating.
func (c *Client) FriendActivity(ctx context.Context, friendIDs []string) ([]models.FriendActivity, error) {
	if len(friendIDs) == 0 {
		return nil, nil
	}
	var activity []models.FriendActivity
	if err := c.post(ctx, "/friends/activity", activityQuery{FriendIDs: friendIDs}, &activity); err != nil {
		return nil, err
	}
	for i := range activity {
		activity[i].Name = c.clean(activity[i].Name)
	}
	return activity, nil
}

type friendRequest struct {
	SenderID   string `json:"senderID"`
	ReceiverID string `json:"receiverID"`
}

// FriendRequests fetches ids of players following the user that the
// user does not follow back.
func (c *Client) FriendRequests(ctx context.Context, userID string, friendIDs []string) ([]string, error) {
	payload := struct {
		UserID    string   `json:"userID"`
		FriendIDs []string `json:"friendIDs"`
	}{UserID: userID, FriendIDs: friendIDs}
	var requesters []string
	if err := c.post(ctx, "/friends/requests", payload, &requesters); err != nil {
		return nil, err
	}
	return requesters, nil
}

// SendFriendRequest asks another player to connect.
func (c *Client) SendFriendRequest(ctx context.Context, senderID, receiverID string) error {
	return c.post(ctx, "/friends/request", friendRequest{SenderID: senderID, ReceiverID: receiverID}, nil)
}

// AcceptFriendRequest confirms an incoming request.
func (c *Client) AcceptFriendRequest(ctx context.Context, userID, requesterID string) error {
	return c.post(ctx, "/friends/accept", friendRequest{SenderID: requesterID, ReceiverID: userID}, nil)
}

// TopFilms fetches the community film ranking.
func (c *Client) TopFilms(ctx context.Context) ([]models.TopFilm, error) {
	var films []models.TopFilm
	if err := c.get(ctx, "/films/top", nil, &films); err != nil {
		return nil, err
	}
	for i := range films {
		films[i].MoreInfo = c.clean(films[i].MoreInfo)
	}
	return films, nil
}

type pushToken struct {
	UserID string `json:"userID"`
	Token  string `json:"token"`
}

// RegisterPushToken stores a notification token for the user.
func (c *Client) RegisterPushToken(ctx context.Context, userID, token string) error {
	return c.post(ctx, "/push/register", pushToken{UserID: userID, Token: token}, nil)
}

// RemovePushToken deletes the user's notification token, called when
// notifications are switched off in preferences.
func (c *Client) RemovePushToken(ctx context.Context, userID string) error {
	return c.post(ctx, "/push/remove", pushToken{UserID: userID}, nil)
}
