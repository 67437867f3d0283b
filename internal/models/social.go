package models

// Review is one entry from the reviews feed.
type Review struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Rating   int    `json:"rating"`
	Review   string `json:"review"`
	ImageURL string `json:"imageUrl"`
	Date     string `json:"date"`
}

// Comment belongs to a community post.
type Comment struct {
	CreatorID   string `json:"creatorID"`
	CreatorName string `json:"creatorName"`
	Content     string `json:"commentContent"`
}

// Post is one community post with its reactions and comments.
type Post struct {
	PostID        int       `json:"postID"`
	CreatorID     string    `json:"creatorID"`
	CreatorName   string    `json:"creatorName"`
	PostDate      string    `json:"postDate"`
	Title         string    `json:"postTitle"`
	Content       string    `json:"postContent"`
	ContainsImage string    `json:"containsImage"`
	LikerIDs      []string  `json:"likerID"`
	Comments      []Comment `json:"comments"`
}

// LikedBy reports whether the given user already liked the post.
func (p Post) LikedBy(userID string) bool {
	for _, id := range p.LikerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Message is one direct chat message between two players.
type Message struct {
	SenderID   string `json:"senderID"`
	ReceiverID string `json:"receiverID"`
	Text       string `json:"text"`
	Timestamp  string `json:"timestamp"`
}

// FriendActivity is a friend's latest shared rating, as returned by the
// activity endpoint for each id the device follows.
type FriendActivity struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Day    int    `json:"day"`
	Title  string `json:"title"`
	Rating int    `json:"rating"`
}

// RatedFilm is one film on a public profile, with the score given.
type RatedFilm struct {
	Title  string `json:"title"`
	Poster string `json:"poster"`
	Rating int    `json:"rating"`
}

// UserInfo is another player's public profile.
type UserInfo struct {
	UserID    string      `json:"userID"`
	UserName  string      `json:"userName"`
	UserSince string      `json:"userSince"`
	Ratings   []RatedFilm `json:"ratings"`
}

// TopFilm is one row of the community ranking.
type TopFilm struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Director string `json:"director"`
	MoreInfo string `json:"moreInfo"`
	ImageURL string `json:"imageUrl"`
}
