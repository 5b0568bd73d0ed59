// internal/domain/journal.go
package domain

import (
	"strings"
	"time"
)

// DiaryDateLayout is the wire and storage format of a diary date.
const DiaryDateLayout = "2006-01-02"

// Diary is one journal entry; a user has at most one per calendar date.
// Optional presentation fields are nullable and stay nil unless supplied.
type Diary struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	Date        string    `db:"diary_date" json:"date"`
	Content     string    `db:"content" json:"content"`
	Title       *string   `db:"title" json:"title"`
	Mood        *string   `db:"mood" json:"mood"`
	MoodColor   *string   `db:"mood_color" json:"mood_color"`
	WeatherIcon *string   `db:"weather_icon" json:"weather_icon"`
	Sentiment   string    `db:"sentiment" json:"sentiment"`
	AIMessage   string    `db:"ai_message" json:"ai_message"`
	Keywords    string    `db:"keywords" json:"keywords"` // comma separated
	Topics      string    `db:"topics" json:"topics"`     // comma separated
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// DiaryInput carries the user-supplied fields of a diary save.
type DiaryInput struct {
	Date        string
	Content     string
	Title       *string
	Mood        *string
	MoodColor   *string
	WeatherIcon *string
}

// Apply copies the supplied optional fields onto d. Empty optional values
// leave the stored value untouched, except Title which may be cleared.
func (in DiaryInput) Apply(d *Diary) {
	d.Content = strings.TrimSpace(in.Content)
	if in.Title != nil {
		d.Title = in.Title
	}
	if nonEmpty(in.Mood) {
		d.Mood = in.Mood
	}
	if nonEmpty(in.MoodColor) {
		d.MoodColor = in.MoodColor
	}
	if nonEmpty(in.WeatherIcon) {
		d.WeatherIcon = in.WeatherIcon
	}
}

// Sentiment is the opaque tagging result attached to a diary.
type Sentiment struct {
	Label    string
	Message  string
	Keywords []string
	Topics   []string
}

// ApplySentiment stores s on the diary.
func (d *Diary) ApplySentiment(s Sentiment) {
	d.Sentiment = s.Label
	d.AIMessage = s.Message
	d.Keywords = strings.Join(s.Keywords, ", ")
	d.Topics = strings.Join(s.Topics, ", ")
}

// Photo is the metadata record of an uploaded photo. File storage lives elsewhere.
type Photo struct {
	ID         int64     `db:"id" json:"id"`
	OwnerID    int64     `db:"owner_id" json:"owner_id"`
	URL        string    `db:"url" json:"url"`
	Caption    string    `db:"caption" json:"caption"`
	UploadedAt time.Time `db:"uploaded_at" json:"uploaded_at"`
}

func nonEmpty(s *string) bool {
	return s != nil && *s != ""
}
