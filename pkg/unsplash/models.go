package unsplash

import (
	"time"

	"github.com/yanqian/unsplash-go/pkg/decode"
)

// PhotoURL lists the rendered sizes of a photo.
type PhotoURL struct {
	Raw     *decode.URL `json:"raw,omitempty"`
	Full    decode.URL  `json:"full"`
	Regular decode.URL  `json:"regular"`
	Small   decode.URL  `json:"small"`
	Thumb   decode.URL  `json:"thumb"`
}

// ProfileImage lists the avatar sizes of a user.
type ProfileImage struct {
	Small  decode.URL `json:"small"`
	Medium decode.URL `json:"medium"`
	Large  decode.URL `json:"large"`
}

// User is a public profile. Listing endpoints embed a partial user, so most
// fields are optional.
type User struct {
	ID                string        `json:"id"`
	Username          string        `json:"username"`
	Name              *string       `json:"name,omitempty"`
	FirstName         *string       `json:"first_name,omitempty"`
	LastName          *string       `json:"last_name,omitempty"`
	Email             *string       `json:"email,omitempty"`
	Bio               *string       `json:"bio,omitempty"`
	Location          *string       `json:"location,omitempty"`
	PortfolioURL      *decode.URL   `json:"portfolio_url,omitempty"`
	InstagramUsername *string       `json:"instagram_username,omitempty"`
	ProfileImage      *ProfileImage `json:"profile_image,omitempty"`
	Downloads         *uint32       `json:"downloads,omitempty"`
	UploadsRemaining  *uint32       `json:"uploads_remaining,omitempty"`
}

// Position is a geographic coordinate.
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Location is where a photo was taken.
type Location struct {
	City     *string   `json:"city,omitempty"`
	Country  *string   `json:"country,omitempty"`
	Position *Position `json:"position,omitempty"`
}

// Exif carries camera metadata. Any tag may be missing.
type Exif struct {
	Make         *string `json:"make,omitempty"`
	Model        *string `json:"model,omitempty"`
	ExposureTime *string `json:"exposure_time,omitempty"`
	Aperture     *string `json:"aperture,omitempty"`
	FocalLength  *string `json:"focal_length,omitempty"`
	ISO          *uint32 `json:"iso,omitempty"`
}

// Category groups photos by theme.
type Category struct {
	ID         uint32 `json:"id"`
	Title      string `json:"title"`
	PhotoCount uint32 `json:"photo_count"`
}

// Photo is a single image. Only the id and rendered URLs are guaranteed;
// the rest depends on which endpoint produced it.
type Photo struct {
	ID         string        `json:"id"`
	Width      *uint32       `json:"width,omitempty"`
	Height     *uint32       `json:"height,omitempty"`
	Color      *decode.Color `json:"color,omitempty"`
	CreatedAt  *time.Time    `json:"created_at,omitempty"`
	User       *User         `json:"user,omitempty"`
	URLs       PhotoURL      `json:"urls"`
	Categories []Category    `json:"categories,omitempty"`
	Exif       *Exif         `json:"exif,omitempty"`
	Location   *Location     `json:"location,omitempty"`
	Downloads  *uint32       `json:"downloads,omitempty"`
	Likes      *uint32       `json:"likes,omitempty"`
	LikedByMe  *bool         `json:"liked_by_user,omitempty"`
}

// Collection is a user curated set of photos.
type Collection struct {
	ID          uint32     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Curated     bool       `json:"curated"`
	Private     *bool      `json:"private,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CoverPhoto  *Photo     `json:"cover_photo,omitempty"`
	User        *User      `json:"user,omitempty"`
}

// Curator is the staff member behind a curated batch.
type Curator struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Name     string  `json:"name"`
	Bio      *string `json:"bio,omitempty"`
}

// CuratedBatch is a dated set of editor picks. The API omits downloads on
// some responses; it reads as zero then.
type CuratedBatch struct {
	ID          uint32    `json:"id"`
	PublishedAt time.Time `json:"published_at"`
	Downloads   uint32    `json:"downloads"`
	Curator     Curator   `json:"curator"`
}

// Stats are the service wide download totals.
type Stats struct {
	PhotoDownloads uint32 `json:"photo_downloads"`
	BatchDownloads uint32 `json:"batch_downloads"`
}

// PhotoUserResult is returned when liking or unliking a photo.
type PhotoUserResult struct {
	Photo Photo `json:"photo"`
	User  User  `json:"user"`
}

// PhotoCollectionResult is returned when a photo is added to a collection.
type PhotoCollectionResult struct {
	Photo      Photo      `json:"photo"`
	Collection Collection `json:"collection"`
}

type PhotosResult struct {
	Photos []Photo `json:"photos"`
}

type CollectionsResult struct {
	Collections []Collection `json:"collections"`
}

type CategoriesResult struct {
	Categories []Category `json:"categories"`
}

type CuratedBatchesResult struct {
	Batches []CuratedBatch `json:"batches"`
}
