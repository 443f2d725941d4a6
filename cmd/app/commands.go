package main

import (
	"context"
	"errors"
	"io"

	json "github.com/goccy/go-json"

	"github.com/yanqian/unsplash-go/internal/bootstrap"
	"github.com/yanqian/unsplash-go/pkg/decode"
	"github.com/yanqian/unsplash-go/pkg/unsplash"
)

// CLI is the command tree.
type CLI struct {
	Photos      PhotosCmd      `cmd:"" help:"Browse photos."`
	Users       UsersCmd       `cmd:"" help:"Look up users."`
	Collections CollectionsCmd `cmd:"" help:"Browse collections."`
	Categories  CategoriesCmd  `cmd:"" help:"Browse categories."`
	Batches     BatchesCmd     `cmd:"" help:"Browse curated batches (requires login)."`
	Stats       StatsCmd       `cmd:"" help:"Show total download counts."`
	Me          MeCmd          `cmd:"" help:"Show the logged-in user."`
	Login       LoginCmd       `cmd:"" help:"Authorize this app with your Unsplash account."`
	Logout      LogoutCmd      `cmd:"" help:"Forget the stored access token."`
}

type runContext struct {
	ctx context.Context
	app *bootstrap.App
	out io.Writer
}

func emit[T any](rc *runContext, route unsplash.Route[T]) error {
	value, err := unsplash.Execute(rc.ctx, rc.app.Client(), route)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(rc.out)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

type PageFlags struct {
	Page    uint32 `help:"Page number."`
	PerPage uint32 `help:"Items per page." name:"per-page"`
}

func (p PageFlags) page() unsplash.Page {
	return unsplash.Page{Page: p.Page, PerPage: p.PerPage}
}

type SizeFlags struct {
	Width  uint32 `help:"Resize to this width." short:"w"`
	Height uint32 `help:"Resize to this height." short:"H"`
}

func (s SizeFlags) size() unsplash.Size {
	return unsplash.Size{Width: s.Width, Height: s.Height}
}

// Photos

type PhotosCmd struct {
	List   PhotosListCmd   `cmd:"" help:"List the newest photos."`
	Get    PhotosGetCmd    `cmd:"" help:"Show one photo."`
	Search PhotosSearchCmd `cmd:"" help:"Search photos."`
	Random PhotosRandomCmd `cmd:"" help:"Show a random photo."`
}

type PhotosListCmd struct {
	PageFlags `embed:""`
}

func (c *PhotosListCmd) Run(rc *runContext) error {
	return emit(rc, unsplash.ListPhotos(c.page()))
}

type PhotosGetCmd struct {
	ID string `arg:"" help:"Photo id."`
	SizeFlags `embed:""`
}

func (c *PhotosGetCmd) Run(rc *runContext) error {
	return emit(rc, unsplash.GetPhoto(c.ID, c.size()))
}

type PhotosSearchCmd struct {
	Query      string   `arg:"" help:"Search terms."`
	Categories []uint32 `help:"Restrict to these category ids." sep:","`
	PageFlags `embed:""`
}

func (c *PhotosSearchCmd) Run(rc *runContext) error {
	return emit(rc, unsplash.SearchPhotos(unsplash.SearchQuery{Query: c.Query, CategoryIDs: c.Categories, Page: c.page()}))
}

type PhotosRandomCmd struct {
	Query      string   `help:"Draw from photos matching these terms."`
	Categories []uint32 `help:"Draw from these category ids." sep:","`
	Featured   bool     `help:"Only featured photos."`
	Username   string   `help:"Only photos by this user."`
	SizeFlags `embed:""`
}

func (c *PhotosRandomCmd) Run(rc *runContext) error {
	return emit(rc, unsplash.RandomPhoto(unsplash.RandomQuery{
		Query:       c.Query,
		CategoryIDs: c.Categories,
		Featured:    c.Featured,
		Username:    c.Username,
		Size:        c.size(),
	}))
}

// Users

type UsersCmd struct {
	Get    UsersGetCmd    `cmd:"" help:"Show a user's profile."`
	Photos UsersPhotosCmd `cmd:"" help:"List a user's photos."`
	Likes  UsersLikesCmd  `cmd:"" help:"List photos a user liked."`
}

type UsersGetCmd struct {
	Username string `arg:""`
	SizeFlags `embed:""`
}

func (c *UsersGetCmd) Run(rc *runContext) error {
	return emit(rc, unsplash.GetUser(c.Username, c.size()))
}

type UsersPhotosCmd struct {
	Username string `arg:""`
	PageFlags `embed:""`
}

func (c *UsersPhotosCmd) Run(rc *runContext) error {
	return emit(rc, unsplash.UserPhotos(c.Username, c.page()))
}

type UsersLikesCmd struct {
	Username string `arg:""`
	PageFlags `embed:""`
}

func (c *UsersLikesCmd) Run(rc *runContext) error {
	return emit(rc, unsplash.UserLikes(c.Username, c.page()))
}

// Collections

type CollectionsCmd struct {
	List   CollectionsListCmd   `cmd:"" help:"List collections."`
	Get    CollectionsGetCmd    `cmd:"" help:"Show one collection."`
	Photos CollectionsPhotosCmd `cmd:"" help:"List a collection's photos."`
}

type CollectionsListCmd struct {
	Curated bool `help:"List curated collections."`
	PageFlags `embed:""`
}

func (c *CollectionsListCmd) Run(rc *runContext) error {
	if c.Curated {
		return emit(rc, unsplash.ListCuratedCollections(c.page()))
	}
	return emit(rc, unsplash.ListCollections(c.page()))
}

type CollectionsGetCmd struct {
	ID      uint32 `arg:""`
	Curated bool   `help:"The id names a curated collection."`
}

func (c *CollectionsGetCmd) Run(rc *runContext) error {
	if c.Curated {
		return emit(rc, unsplash.GetCuratedCollection(c.ID))
	}
	return emit(rc, unsplash.GetCollection(c.ID))
}

type CollectionsPhotosCmd struct {
	ID      uint32 `arg:""`
	Curated bool   `help:"The id names a curated collection."`
	PageFlags `embed:""`
}

func (c *CollectionsPhotosCmd) Run(rc *runContext) error {
	if c.Curated {
		return emit(rc, unsplash.CuratedCollectionPhotos(c.ID, c.page()))
	}
	return emit(rc, unsplash.CollectionPhotos(c.ID, c.page()))
}

// Categories

type CategoriesCmd struct {
	List   CategoriesListCmd   `cmd:"" help:"List categories."`
	Get    CategoriesGetCmd    `cmd:"" help:"Show one category."`
	Photos CategoriesPhotosCmd `cmd:"" help:"List a category's photos."`
}

type CategoriesListCmd struct{}

func (c *CategoriesListCmd) Run(rc *runContext) error {
	return emit(rc, unsplash.ListCategories())
}

type CategoriesGetCmd struct {
	ID uint32 `arg:""`
}

func (c *CategoriesGetCmd) Run(rc *runContext) error {
	return emit(rc, unsplash.GetCategory(c.ID))
}

type CategoriesPhotosCmd struct {
	ID uint32 `arg:""`
	PageFlags `embed:""`
}

func (c *CategoriesPhotosCmd) Run(rc *runContext) error {
	return emit(rc, unsplash.CategoryPhotos(c.ID, c.page()))
}

// Curated batches

type BatchesCmd struct {
	List   BatchesListCmd   `cmd:"" help:"List curated batches."`
	Get    BatchesGetCmd    `cmd:"" help:"Show one curated batch."`
	Photos BatchesPhotosCmd `cmd:"" help:"List a curated batch's photos."`
}

type BatchesListCmd struct {
	PageFlags `embed:""`
}

func (c *BatchesListCmd) Run(rc *runContext) error {
	return emit(rc, unsplash.ListCuratedBatches(c.page()))
}

type BatchesGetCmd struct {
	ID uint32 `arg:""`
}

func (c *BatchesGetCmd) Run(rc *runContext) error {
	return emit(rc, unsplash.GetCuratedBatch(c.ID))
}

type BatchesPhotosCmd struct {
	ID uint32 `arg:""`
}

func (c *BatchesPhotosCmd) Run(rc *runContext) error {
	return emit(rc, unsplash.CuratedBatchPhotos(c.ID))
}

type StatsCmd struct{}

func (c *StatsCmd) Run(rc *runContext) error {
	return emit(rc, unsplash.TotalStats())
}

type MeCmd struct{}

func (c *MeCmd) Run(rc *runContext) error {
	return emit(rc, unsplash.CurrentUser())
}

type LoginCmd struct{}

func (c *LoginCmd) Run(rc *runContext) error {
	return rc.app.Login(rc.ctx, rc.out)
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(rc *runContext) error {
	return rc.app.Logout(rc.ctx)
}

// describeError turns the failure taxonomy into a one-line message.
func describeError(err error) string {
	var (
		decodeErr *decode.DecodeError
		rateErr   *unsplash.RateLimitError
	)
	switch {
	case errors.Is(err, unsplash.ErrNotAuthorized):
		return "not logged in: run `unsplash login` first"
	case errors.As(err, &rateErr):
		return "rate limit exceeded, try again later"
	case errors.As(err, &decodeErr):
		return "unexpected response: " + err.Error()
	default:
		return err.Error()
	}
}
