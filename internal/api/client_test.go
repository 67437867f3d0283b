package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/bpstudios/widescreen/internal/models"
)

func TestPuzzleOfDay(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/puzzle" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("day"); got != "306" {
			t.Errorf("day = %q, want 306", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"title":    "Oldboy",
			"director": "Park Chan-wook",
			"genre":    "Thriller",
			"pegi":     "18",
			"length":   120,
			"frame1":   "a.jpg",
			"frame2":   "b.jpg",
			"frame3":   "c.jpg",
			"frame4":   "d.jpg",
			"frame5":   "e.jpg",
			"poster":   "poster.jpg",
		})
	}))
	defer server.Close()

	client := New(server.URL)
	puzzle, err := client.PuzzleOfDay(context.Background(), 306)
	if err != nil {
		t.Fatal(err)
	}
	if puzzle.Title != "Oldboy" || puzzle.DayID != 306 || puzzle.RuntimeMinutes != 120 || puzzle.ContentRating != "18" {
		t.Errorf("puzzle = %+v", puzzle)
	}
	wantFrames := []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg"}
	if !reflect.DeepEqual(puzzle.Frames, wantFrames) {
		t.Errorf("frames = %v, want %v", puzzle.Frames, wantFrames)
	}
}

func TestAllTitles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]string{"Oldboy", "Heat", "The Third Man"})
	}))
	defer server.Close()

	titles, err := New(server.URL).AllTitles(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(titles) != 3 || titles[1] != "Heat" {
		t.Errorf("titles = %v", titles)
	}
}

func TestSubmitRatingPayload(t *testing.T) {
	var got models.RatingSubmission
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/rating" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Error(err)
		}
	}))
	defer server.Close()

	sub := models.RatingSubmission{
		RequestID: "req-1",
		UserID:    "52079",
		Name:      "user52079",
		Day:       306,
		Title:     "Oldboy",
		Rating:    4,
	}
	if err := New(server.URL).SubmitRating(context.Background(), sub); err != nil {
		t.Fatal(err)
	}
	if got != sub {
		t.Errorf("server received %+v, want %+v", got, sub)
	}
}

func TestPostsAreSanitized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.Post{{
			PostID:      1,
			CreatorID:   "1001",
			CreatorName: "<b>eve</b>",
			Title:       "hello <script>alert(1)</script>",
			Content:     "watch <i>this</i> film & that one",
			LikerIDs:    []string{"1001"},
			Comments:    []models.Comment{{CreatorName: "bob", Content: "<img src=x>nice"}},
		}})
	}))
	defer server.Close()

	posts, err := New(server.URL).Posts(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	post := posts[0]
	if post.CreatorName != "eve" {
		t.Errorf("creator name = %q", post.CreatorName)
	}
	if post.Title != "hello " {
		t.Errorf("title = %q", post.Title)
	}
	if post.Content != "watch this film & that one" {
		t.Errorf("content = %q", post.Content)
	}
	if post.Comments[0].Content != "nice" {
		t.Errorf("comment = %q", post.Comments[0].Content)
	}
	if !post.LikedBy("1001") || post.LikedBy("9999") {
		t.Error("LikedBy wrong")
	}
}

func TestErrorStatusSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	if _, err := New(server.URL).PuzzleOfDay(context.Background(), 1); err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestUserIDExists(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		exists := r.URL.Query().Get("id") == "52079"
		json.NewEncoder(w).Encode(map[string]bool{"exists": exists})
	}))
	defer server.Close()

	client := New(server.URL)
	taken, err := client.UserIDExists(context.Background(), "52079")
	if err != nil || !taken {
		t.Errorf("taken id: got %v %v", taken, err)
	}
	free, err := client.UserIDExists(context.Background(), "1234")
	if err != nil || free {
		t.Errorf("free id: got %v %v", free, err)
	}
}

func TestFriendActivitySkipsEmptyList(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode([]models.FriendActivity{})
	}))
	defer server.Close()

	activity, err := New(server.URL).FriendActivity(context.Background(), nil)
	if err != nil || activity != nil {
		t.Errorf("got %v %v", activity, err)
	}
	if calls != 0 {
		t.Error("request made with no friends to query")
	}
}

func TestFriendActivityQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			FriendIDs []string `json:"friendIDs"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Error(err)
		}
		if len(payload.FriendIDs) != 2 {
			t.Errorf("friendIDs = %v", payload.FriendIDs)
		}
		json.NewEncoder(w).Encode([]models.FriendActivity{
			{ID: "1001", Name: "ann", Day: 306, Title: "Heat", Rating: 5},
		})
	}))
	defer server.Close()

	activity, err := New(server.URL).FriendActivity(context.Background(), []string{"1001", "1002"})
	if err != nil {
		t.Fatal(err)
	}
	if len(activity) != 1 || activity[0].Title != "Heat" {
		t.Errorf("activity = %+v", activity)
	}
}
