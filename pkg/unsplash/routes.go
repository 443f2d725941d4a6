package unsplash

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Page selects a page of a listing. Zero fields are left to the API
// defaults.
type Page struct {
	Page    uint32
	PerPage uint32
}

func (p Page) apply(params Params) Params {
	if params == nil {
		params = Params{}
	}
	if p.Page > 0 {
		params["page"] = p.Page
	}
	if p.PerPage > 0 {
		params["per_page"] = p.PerPage
	}
	return params
}

// Size optionally requests a resized rendition.
type Size struct {
	Width  uint32
	Height uint32
}

func (s Size) apply(params Params, wKey, hKey string) Params {
	if s.Width > 0 {
		params[wKey] = s.Width
	}
	if s.Height > 0 {
		params[hKey] = s.Height
	}
	return params
}

func joinIDs(ids []uint32) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ",")
}

func photoPath(id string) string {
	return "/photos/" + url.PathEscape(id)
}

// Photos

func ListPhotos(page Page) Route[PhotosResult] {
	return Route[PhotosResult]{Method: http.MethodGet, Path: "/photos", Params: page.apply(nil), Decode: DecodePhotosResult}
}

func GetPhoto(id string, size Size) Route[Photo] {
	return Route[Photo]{Method: http.MethodGet, Path: photoPath(id), Params: size.apply(Params{}, "w", "h"), Decode: DecodePhoto}
}

// SearchQuery filters a photo search.
type SearchQuery struct {
	Query       string
	CategoryIDs []uint32
	Page        Page
}

func SearchPhotos(q SearchQuery) Route[PhotosResult] {
	params := q.Page.apply(Params{"query": q.Query})
	if len(q.CategoryIDs) > 0 {
		params["category"] = joinIDs(q.CategoryIDs)
	}
	return Route[PhotosResult]{Method: http.MethodGet, Path: "/photos/search", Params: params, Decode: DecodePhotosResult}
}

// RandomQuery narrows the pool a random photo is drawn from.
type RandomQuery struct {
	Query       string
	CategoryIDs []uint32
	Featured    bool
	Username    string
	Size        Size
}

func RandomPhoto(q RandomQuery) Route[Photo] {
	params := q.Size.apply(Params{}, "w", "h")
	if q.Query != "" {
		params["query"] = q.Query
	}
	if len(q.CategoryIDs) > 0 {
		params["category"] = joinIDs(q.CategoryIDs)
	}
	if q.Featured {
		params["featured"] = "true"
	}
	if q.Username != "" {
		params["username"] = q.Username
	}
	return Route[Photo]{Method: http.MethodGet, Path: "/photos/random", Params: params, Decode: DecodePhoto}
}

func LikePhoto(id string) Route[PhotoUserResult] {
	return Route[PhotoUserResult]{Method: http.MethodPost, Path: photoPath(id) + "/like", Auth: true, Decode: DecodePhotoUserResult}
}

func UnlikePhoto(id string) Route[bool] {
	return Route[bool]{Method: http.MethodDelete, Path: photoPath(id) + "/like", Auth: true, Decode: Deleted}
}

// Users

func GetUser(username string, size Size) Route[User] {
	path := "/users/" + url.PathEscape(username)
	return Route[User]{Method: http.MethodGet, Path: path, Params: size.apply(Params{}, "w", "h"), Decode: DecodeUser}
}

func UserPhotos(username string, page Page) Route[PhotosResult] {
	path := "/users/" + url.PathEscape(username) + "/photos"
	return Route[PhotosResult]{Method: http.MethodGet, Path: path, Params: page.apply(nil), Decode: DecodePhotosResult}
}

func UserLikes(username string, page Page) Route[PhotosResult] {
	path := "/users/" + url.PathEscape(username) + "/likes"
	return Route[PhotosResult]{Method: http.MethodGet, Path: path, Params: page.apply(nil), Decode: DecodePhotosResult}
}

// Current user

func CurrentUser() Route[User] {
	return Route[User]{Method: http.MethodGet, Path: "/me", Auth: true, Decode: DecodeUser}
}

// ProfileUpdate lists the profile fields to change. Empty fields are left
// untouched.
type ProfileUpdate struct {
	Username          string
	FirstName         string
	LastName          string
	Email             string
	PortfolioURL      string
	Location          string
	Bio               string
	InstagramUsername string
}

func UpdateCurrentUser(u ProfileUpdate) Route[User] {
	params := Params{}
	for key, value := range map[string]string{
		"username":           u.Username,
		"first_name":         u.FirstName,
		"last_name":          u.LastName,
		"email":              u.Email,
		"url":                u.PortfolioURL,
		"location":           u.Location,
		"bio":                u.Bio,
		"instagram_username": u.InstagramUsername,
	} {
		if value != "" {
			params[key] = value
		}
	}
	return Route[User]{Method: http.MethodPut, Path: "/me", Auth: true, Params: params, Decode: DecodeUser}
}

// Collections

func collectionPath(id uint32) string {
	return fmt.Sprintf("/collections/%d", id)
}

func ListCollections(page Page) Route[CollectionsResult] {
	return Route[CollectionsResult]{Method: http.MethodGet, Path: "/collections", Params: page.apply(nil), Decode: DecodeCollectionsResult}
}

func ListCuratedCollections(page Page) Route[CollectionsResult] {
	return Route[CollectionsResult]{Method: http.MethodGet, Path: "/collections/curated", Params: page.apply(nil), Decode: DecodeCollectionsResult}
}

func GetCollection(id uint32) Route[Collection] {
	return Route[Collection]{Method: http.MethodGet, Path: collectionPath(id), Decode: DecodeCollection}
}

func GetCuratedCollection(id uint32) Route[Collection] {
	return Route[Collection]{Method: http.MethodGet, Path: fmt.Sprintf("/collections/curated/%d", id), Decode: DecodeCollection}
}

func CollectionPhotos(id uint32, page Page) Route[PhotosResult] {
	return Route[PhotosResult]{Method: http.MethodGet, Path: collectionPath(id) + "/photos", Params: page.apply(nil), Decode: DecodePhotosResult}
}

func CuratedCollectionPhotos(id uint32, page Page) Route[PhotosResult] {
	path := fmt.Sprintf("/collections/curated/%d/photos", id)
	return Route[PhotosResult]{Method: http.MethodGet, Path: path, Params: page.apply(nil), Decode: DecodePhotosResult}
}

// CollectionInput holds the editable fields of a collection.
type CollectionInput struct {
	Title       string
	Description string
	Private     bool
}

func (in CollectionInput) params() Params {
	params := Params{}
	if in.Title != "" {
		params["title"] = in.Title
	}
	if in.Description != "" {
		params["description"] = in.Description
	}
	if in.Private {
		params["private"] = "true"
	}
	return params
}

func CreateCollection(in CollectionInput) Route[Collection] {
	return Route[Collection]{Method: http.MethodPost, Path: "/collections", Auth: true, Params: in.params(), Decode: DecodeCollection}
}

func UpdateCollection(id uint32, in CollectionInput) Route[Collection] {
	return Route[Collection]{Method: http.MethodPut, Path: collectionPath(id), Auth: true, Params: in.params(), Decode: DecodeCollection}
}

func DeleteCollection(id uint32) Route[bool] {
	return Route[bool]{Method: http.MethodDelete, Path: collectionPath(id), Auth: true, Decode: Deleted}
}

func AddPhotoToCollection(id uint32, photoID string) Route[PhotoCollectionResult] {
	return Route[PhotoCollectionResult]{
		Method: http.MethodPost,
		Path:   collectionPath(id) + "/add",
		Auth:   true,
		Params: Params{"collection_id": id, "photo_id": photoID},
		Decode: DecodePhotoCollectionResult,
	}
}

func RemovePhotoFromCollection(id uint32, photoID string) Route[bool] {
	return Route[bool]{
		Method: http.MethodDelete,
		Path:   collectionPath(id) + "/remove",
		Auth:   true,
		Params: Params{"collection_id": id, "photo_id": photoID},
		Decode: Deleted,
	}
}

// Categories

func ListCategories() Route[CategoriesResult] {
	return Route[CategoriesResult]{Method: http.MethodGet, Path: "/categories", Decode: DecodeCategoriesResult}
}

func GetCategory(id uint32) Route[Category] {
	return Route[Category]{Method: http.MethodGet, Path: fmt.Sprintf("/categories/%d", id), Decode: DecodeCategory}
}

func CategoryPhotos(id uint32, page Page) Route[PhotosResult] {
	path := fmt.Sprintf("/categories/%d/photos", id)
	return Route[PhotosResult]{Method: http.MethodGet, Path: path, Params: page.apply(nil), Decode: DecodePhotosResult}
}

// Curated batches are only served to logged-in users.

func ListCuratedBatches(page Page) Route[CuratedBatchesResult] {
	return Route[CuratedBatchesResult]{Method: http.MethodGet, Path: "/curated_batches", Auth: true, Params: page.apply(nil), Decode: DecodeCuratedBatchesResult}
}

func GetCuratedBatch(id uint32) Route[CuratedBatch] {
	return Route[CuratedBatch]{Method: http.MethodGet, Path: fmt.Sprintf("/curated_batches/%d", id), Auth: true, Decode: DecodeCuratedBatch}
}

func CuratedBatchPhotos(id uint32) Route[PhotosResult] {
	return Route[PhotosResult]{Method: http.MethodGet, Path: fmt.Sprintf("/curated_batches/%d/photos", id), Auth: true, Decode: DecodePhotosResult}
}

// Stats

func TotalStats() Route[Stats] {
	return Route[Stats]{Method: http.MethodGet, Path: "/stats/total", Decode: DecodeStats}
}
