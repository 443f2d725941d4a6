package unsplash

import (
	"github.com/yanqian/unsplash-go/pkg/decode"
	"github.com/yanqian/unsplash-go/pkg/jsonvalue"
)

// DecodePhotoURL decodes the "urls" object of a photo.
func DecodePhotoURL(v jsonvalue.Value) (PhotoURL, error) {
	o := decode.ObjectOf(v)
	out := PhotoURL{
		Raw:     decode.Optional(o, "raw", decode.URLValue),
		Full:    decode.Required(o, "full", decode.URLValue),
		Regular: decode.Required(o, "regular", decode.URLValue),
		Small:   decode.Required(o, "small", decode.URLValue),
		Thumb:   decode.Required(o, "thumb", decode.URLValue),
	}
	return out, o.Err()
}

func DecodeProfileImage(v jsonvalue.Value) (ProfileImage, error) {
	o := decode.ObjectOf(v)
	out := ProfileImage{
		Small:  decode.Required(o, "small", decode.URLValue),
		Medium: decode.Required(o, "medium", decode.URLValue),
		Large:  decode.Required(o, "large", decode.URLValue),
	}
	return out, o.Err()
}

func DecodeUser(v jsonvalue.Value) (User, error) {
	o := decode.ObjectOf(v)
	out := User{
		ID:                decode.Required(o, "id", decode.String),
		Username:          decode.Required(o, "username", decode.String),
		Name:              decode.Optional(o, "name", decode.String),
		FirstName:         decode.Optional(o, "first_name", decode.String),
		LastName:          decode.Optional(o, "last_name", decode.String),
		Email:             decode.Optional(o, "email", decode.String),
		Bio:               decode.Optional(o, "bio", decode.String),
		Location:          decode.Optional(o, "location", decode.String),
		PortfolioURL:      decode.Optional(o, "portfolio_url", decode.URLValue),
		InstagramUsername: decode.Optional(o, "instagram_username", decode.String),
		ProfileImage:      decode.Optional(o, "profile_image", DecodeProfileImage),
		Downloads:         decode.Optional(o, "downloads", decode.Uint32),
		UploadsRemaining:  decode.Optional(o, "uploads_remaining", decode.Uint32),
	}
	return out, o.Err()
}

func DecodePosition(v jsonvalue.Value) (Position, error) {
	o := decode.ObjectOf(v)
	out := Position{
		Latitude:  decode.Required(o, "latitude", decode.Float64),
		Longitude: decode.Required(o, "longitude", decode.Float64),
	}
	return out, o.Err()
}

func DecodeLocation(v jsonvalue.Value) (Location, error) {
	o := decode.ObjectOf(v)
	out := Location{
		City:     decode.Optional(o, "city", decode.String),
		Country:  decode.Optional(o, "country", decode.String),
		Position: decode.Optional(o, "position", DecodePosition),
	}
	return out, o.Err()
}

func DecodeExif(v jsonvalue.Value) (Exif, error) {
	o := decode.ObjectOf(v)
	out := Exif{
		Make:         decode.Optional(o, "make", decode.String),
		Model:        decode.Optional(o, "model", decode.String),
		ExposureTime: decode.Optional(o, "exposure_time", decode.String),
		Aperture:     decode.Optional(o, "aperture", decode.String),
		FocalLength:  decode.Optional(o, "focal_length", decode.String),
		ISO:          decode.Optional(o, "iso", decode.Uint32),
	}
	return out, o.Err()
}

func DecodeCategory(v jsonvalue.Value) (Category, error) {
	o := decode.ObjectOf(v)
	out := Category{
		ID:         decode.Required(o, "id", decode.Uint32),
		Title:      decode.Required(o, "title", decode.String),
		PhotoCount: decode.Required(o, "photo_count", decode.Uint32),
	}
	return out, o.Err()
}

// DecodePhoto decodes any photo representation, from the slim cover photo
// embedded in a collection to the full single-photo response.
func DecodePhoto(v jsonvalue.Value) (Photo, error) {
	o := decode.ObjectOf(v)
	out := Photo{
		ID:        decode.Required(o, "id", decode.String),
		Width:     decode.Optional(o, "width", decode.Uint32),
		Height:    decode.Optional(o, "height", decode.Uint32),
		Color:     decode.Optional(o, "color", decode.ColorValue),
		CreatedAt: decode.Optional(o, "created_at", decode.Time),
		User:      decode.Optional(o, "user", DecodeUser),
		URLs:      decode.Required(o, "urls", DecodePhotoURL),
		Exif:      decode.Optional(o, "exif", DecodeExif),
		Location:  decode.Optional(o, "location", DecodeLocation),
		Downloads: decode.Optional(o, "downloads", decode.Uint32),
		Likes:     decode.Optional(o, "likes", decode.Uint32),
		LikedByMe: decode.Optional(o, "liked_by_user", decode.Bool),
	}
	if categories := decode.Optional(o, "categories", decode.Array(DecodeCategory)); categories != nil {
		out.Categories = *categories
	}
	return out, o.Err()
}

func DecodeCollection(v jsonvalue.Value) (Collection, error) {
	o := decode.ObjectOf(v)
	out := Collection{
		ID:          decode.Required(o, "id", decode.Uint32),
		Title:       decode.Required(o, "title", decode.String),
		Description: decode.Optional(o, "description", decode.String),
		Curated:     decode.Required(o, "curated", decode.Bool),
		Private:     decode.Optional(o, "private", decode.Bool),
		PublishedAt: decode.Optional(o, "published_at", decode.Time),
		CoverPhoto:  decode.Optional(o, "cover_photo", DecodePhoto),
		User:        decode.Optional(o, "user", DecodeUser),
	}
	return out, o.Err()
}

func DecodeCurator(v jsonvalue.Value) (Curator, error) {
	o := decode.ObjectOf(v)
	out := Curator{
		ID:       decode.Required(o, "id", decode.String),
		Username: decode.Required(o, "username", decode.String),
		Name:     decode.Required(o, "name", decode.String),
		Bio:      decode.Optional(o, "bio", decode.String),
	}
	return out, o.Err()
}

// DecodeCuratedBatch substitutes zero for a missing or null downloads
// count. No other model field defaults.
func DecodeCuratedBatch(v jsonvalue.Value) (CuratedBatch, error) {
	o := decode.ObjectOf(v)
	out := CuratedBatch{
		ID:          decode.Required(o, "id", decode.Uint32),
		PublishedAt: decode.Required(o, "published_at", decode.Time),
		Downloads:   decode.Default(o, "downloads", decode.Uint32, 0),
		Curator:     decode.Required(o, "curator", DecodeCurator),
	}
	return out, o.Err()
}

func DecodeStats(v jsonvalue.Value) (Stats, error) {
	o := decode.ObjectOf(v)
	out := Stats{
		PhotoDownloads: decode.Required(o, "photo_downloads", decode.Uint32),
		BatchDownloads: decode.Required(o, "batch_downloads", decode.Uint32),
	}
	return out, o.Err()
}

func DecodePhotoUserResult(v jsonvalue.Value) (PhotoUserResult, error) {
	o := decode.ObjectOf(v)
	out := PhotoUserResult{
		Photo: decode.Required(o, "photo", DecodePhoto),
		User:  decode.Required(o, "user", DecodeUser),
	}
	return out, o.Err()
}

func DecodePhotoCollectionResult(v jsonvalue.Value) (PhotoCollectionResult, error) {
	o := decode.ObjectOf(v)
	out := PhotoCollectionResult{
		Photo:      decode.Required(o, "photo", DecodePhoto),
		Collection: decode.Required(o, "collection", DecodeCollection),
	}
	return out, o.Err()
}

// DecodePhotosResult expects an array root.
func DecodePhotosResult(v jsonvalue.Value) (PhotosResult, error) {
	photos, err := decode.Array(DecodePhoto)(v)
	return PhotosResult{Photos: photos}, err
}

func DecodeCollectionsResult(v jsonvalue.Value) (CollectionsResult, error) {
	collections, err := decode.Array(DecodeCollection)(v)
	return CollectionsResult{Collections: collections}, err
}

func DecodeCategoriesResult(v jsonvalue.Value) (CategoriesResult, error) {
	categories, err := decode.Array(DecodeCategory)(v)
	return CategoriesResult{Categories: categories}, err
}

func DecodeCuratedBatchesResult(v jsonvalue.Value) (CuratedBatchesResult, error) {
	batches, err := decode.Array(DecodeCuratedBatch)(v)
	return CuratedBatchesResult{Batches: batches}, err
}

// Deleted accepts the empty body of a 204 as success. Any other payload on
// a delete route is also taken as success since the API sends none.
func Deleted(jsonvalue.Value) (bool, error) {
	return true, nil
}
