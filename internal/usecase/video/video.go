package usecase_video

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/catalog/internal/model"
)

var (
	ErrInternal    = errors.New("internal error")
	ErrNoFiles     = errors.New("no files to upload")
	ErrUnknownKind = errors.New("unknown asset kind")
)

const mediaStatusAttempts = 3

//go:generate mockery --name=Repository --output=mocks/video/repository --outpkg=repo_mocks
type Repository interface {
	Insert(ctx context.Context, v *model.Video) error
	Update(ctx context.Context, v *model.Video) error
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*model.Video, error)
	Search(ctx context.Context, in model.SearchInput) (model.SearchOutput[*model.Video], error)
}

// RelatedFinder returns the subset of ids that exist.
//
//go:generate mockery --name=RelatedFinder --output=mocks/video/repository --outpkg=repo_mocks
type RelatedFinder interface {
	IDsByIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}

type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Storage interface {
	Save(ctx context.Context, key string, f model.File) (string, error)
	Delete(ctx context.Context, key string) error
	GeneratePresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

//go:generate mockery --name=EncodeQueue --output=mocks/video/encoder --outpkg=encoder_mocks
type EncodeQueue interface {
	Publish(ctx context.Context, req model.EncodeRequest) error
}

type OrphanSet interface {
	Add(ctx context.Context, keys ...string) error
}

type Thumbnailer interface {
	Half(thumb model.File) (model.File, error)
}

type EventPublisher interface {
	Publish(e model.MediaStatusEvent)
}

type Usecase struct {
	repository  Repository
	categories  RelatedFinder
	genres      RelatedFinder
	castMembers RelatedFinder
	tx          Transactor
	storage     Storage

	encoder    EncodeQueue
	orphans    OrphanSet
	thumbs     Thumbnailer
	events     EventPublisher
	presignTTL time.Duration
	logger     *slog.Logger
}

type Option func(*Usecase)

func WithEncodeQueue(q EncodeQueue) Option {
	return func(u *Usecase) {
		u.encoder = q
	}
}

func WithOrphanSet(s OrphanSet) Option {
	return func(u *Usecase) {
		u.orphans = s
	}
}

func WithThumbnailer(t Thumbnailer) Option {
	return func(u *Usecase) {
		u.thumbs = t
	}
}

func WithEventPublisher(p EventPublisher) Option {
	return func(u *Usecase) {
		u.events = p
	}
}

func WithPresignTTL(d time.Duration) Option {
	return func(u *Usecase) {
		u.presignTTL = d
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func New(
	repository Repository,
	categories RelatedFinder,
	genres RelatedFinder,
	castMembers RelatedFinder,
	tx Transactor,
	storage Storage,
	opts ...Option,
) *Usecase {
	u := &Usecase{
		repository:  repository,
		categories:  categories,
		genres:      genres,
		castMembers: castMembers,
		tx:          tx,
		storage:     storage,
		presignTTL:  15 * time.Minute,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*Output, error) {
	var n model.Notification

	v, err := model.NewVideo(in.fields())
	n.Merge("video", err)
	if err := u.checkRelated(ctx, &n, in.CategoryIDs, in.GenreIDs, in.CastMemberIDs); err != nil {
		return nil, err
	}
	if err := n.Err(); err != nil {
		return nil, err
	}

	v.ReplaceCategories(in.CategoryIDs)
	v.ReplaceGenres(in.GenreIDs)
	v.ReplaceCastMembers(in.CastMemberIDs)

	assets := u.deriveThumbHalf(in.Assets)

	var uploaded []string
	err = u.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		uploaded, _, err = u.attach(ctx, v, assets)
		if err != nil {
			return err
		}
		if err := u.markSentToEncode(v, assets); err != nil {
			return err
		}
		return u.repository.Insert(ctx, v)
	})
	if err != nil {
		u.discard(ctx, uploaded)
		return nil, wrap(err)
	}
	u.requestEncode(ctx, v, assets)

	u.logger.Info("video created", slog.String("id", v.ID.String()), slog.Int("assets", len(uploaded)))
	return toOutput(v), nil
}

func (u *Usecase) Update(ctx context.Context, in UpdateInput) (*Output, error) {
	v, err := u.repository.Get(ctx, in.ID)
	if err != nil {
		return nil, wrap(err)
	}
	if in.Version != nil && *in.Version != v.Version {
		return nil, fmt.Errorf("%w: expected version %d, current %d", model.ErrConflict, *in.Version, v.Version)
	}

	var n model.Notification
	n.Merge("video", v.Update(in.fields()))
	if err := u.checkRelated(ctx, &n, in.CategoryIDs, in.GenreIDs, in.CastMemberIDs); err != nil {
		return nil, err
	}
	if err := n.Err(); err != nil {
		return nil, err
	}

	if in.CategoryIDs != nil {
		v.ReplaceCategories(in.CategoryIDs)
	}
	if in.GenreIDs != nil {
		v.ReplaceGenres(in.GenreIDs)
	}
	if in.CastMemberIDs != nil {
		v.ReplaceCastMembers(in.CastMemberIDs)
	}

	return u.persistWithAssets(ctx, v, u.deriveThumbHalf(in.Assets))
}

// UploadMedias attaches files to an existing video. Replaced files are
// removed from the store once the new paths are committed.
func (u *Usecase) UploadMedias(ctx context.Context, id uuid.UUID, assets Assets) (*Output, error) {
	if assets.empty() {
		var n model.Notification
		n.Add("files", ErrNoFiles.Error())
		return nil, n.Err()
	}

	v, err := u.repository.Get(ctx, id)
	if err != nil {
		return nil, wrap(err)
	}
	return u.persistWithAssets(ctx, v, u.deriveThumbHalf(assets))
}

func (u *Usecase) persistWithAssets(ctx context.Context, v *model.Video, assets Assets) (*Output, error) {
	var uploaded, replaced []string
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		uploaded, replaced, err = u.attach(ctx, v, assets)
		if err != nil {
			return err
		}
		if err := u.markSentToEncode(v, assets); err != nil {
			return err
		}
		return u.repository.Update(ctx, v)
	})
	if err != nil {
		u.discard(ctx, uploaded)
		return nil, wrap(err)
	}

	u.discard(ctx, replaced)
	u.requestEncode(ctx, v, assets)
	return toOutput(v), nil
}

func (u *Usecase) Delete(ctx context.Context, id uuid.UUID) error {
	v, err := u.repository.Get(ctx, id)
	if err != nil {
		return wrap(err)
	}

	err = u.tx.WithinTx(ctx, func(ctx context.Context) error {
		return u.repository.Delete(ctx, id)
	})
	if err != nil {
		return wrap(err)
	}

	u.discard(ctx, assetPaths(v))
	return nil
}

func (u *Usecase) Get(ctx context.Context, id uuid.UUID) (*Output, error) {
	v, err := u.repository.Get(ctx, id)
	if err != nil {
		return nil, wrap(err)
	}
	return toOutput(v), nil
}

func (u *Usecase) List(ctx context.Context, in model.SearchInput) (model.SearchOutput[*Output], error) {
	page, err := u.repository.Search(ctx, in)
	if err != nil {
		return model.SearchOutput[*Output]{}, wrap(err)
	}
	items := make([]*Output, len(page.Items))
	for i, v := range page.Items {
		items[i] = toOutput(v)
	}
	return model.SearchOutput[*Output]{
		Page:    page.Page,
		PerPage: page.PerPage,
		Total:   page.Total,
		Items:   items,
	}, nil
}

// AssetURL returns a time-limited download link for one of the video files.
func (u *Usecase) AssetURL(ctx context.Context, id uuid.UUID, kind model.AssetKind) (string, error) {
	if !kind.IsValid() {
		return "", fmt.Errorf("%w: %w %q", model.ErrNotFound, ErrUnknownKind, kind)
	}
	v, err := u.repository.Get(ctx, id)
	if err != nil {
		return "", wrap(err)
	}

	p := assetPath(v, kind)
	if p == "" {
		return "", fmt.Errorf("%w: video %s has no %s", model.ErrNotFound, id, kind)
	}

	url, err := u.storage.GeneratePresignedURL(ctx, p, u.presignTTL)
	if err != nil {
		return "", wrap(err)
	}
	return url, nil
}

// UpdateMediaStatus applies an encoder result to the video media. A write
// that loses the version race is reapplied on a fresh copy of the video.
func (u *Usecase) UpdateMediaStatus(ctx context.Context, in MediaStatusInput) (*Output, error) {
	if in.Kind == "" {
		in.Kind = model.AssetMedia
	}
	if in.Kind != model.AssetMedia {
		var n model.Notification
		n.Add("kind", fmt.Sprintf("only %s is encoded", model.AssetMedia))
		return nil, n.Err()
	}

	var (
		v   *model.Video
		err error
	)
	for attempt := 1; ; attempt++ {
		v, err = u.applyMediaStatus(ctx, in)
		if err == nil || !errors.Is(err, model.ErrConflict) || attempt == mediaStatusAttempts {
			break
		}
		u.logger.Debug("media status write lost a race, retrying",
			slog.String("id", in.VideoID.String()),
			slog.Int("attempt", attempt))
	}
	if err != nil {
		return nil, err
	}

	if in.Status == model.MediaStatusError {
		u.logger.Warn("media encoding failed",
			slog.String("id", v.ID.String()),
			slog.String("reason", in.ErrorMessage))
	}

	u.publishStatus(v)
	return toOutput(v), nil
}

func (u *Usecase) applyMediaStatus(ctx context.Context, in MediaStatusInput) (*model.Video, error) {
	v, err := u.repository.Get(ctx, in.VideoID)
	if err != nil {
		return nil, wrap(err)
	}

	var n model.Notification
	switch in.Status {
	case model.MediaStatusCompleted:
		n.Merge("status", v.UpdateAsEncoded(in.EncodedPath))
	case model.MediaStatusError:
		n.Merge("status", v.UpdateAsEncodingError())
	case model.MediaStatusProcessing:
		n.Merge("status", v.UpdateAsSentToEncode())
	default:
		n.Add("status", fmt.Sprintf("%s: %q", model.ErrUnknownMediaStatus, in.Status))
	}
	if err := n.Err(); err != nil {
		return nil, err
	}

	err = u.tx.WithinTx(ctx, func(ctx context.Context) error {
		return u.repository.Update(ctx, v)
	})
	if err != nil {
		return nil, wrap(err)
	}
	return v, nil
}

func (u *Usecase) publishStatus(v *model.Video) {
	if u.events == nil || v.Media == nil {
		return
	}
	u.events.Publish(model.MediaStatusEvent{
		VideoID:     v.ID,
		Kind:        model.AssetMedia,
		Status:      v.Media.Status,
		EncodedPath: v.Media.EncodedPath,
		OccurredAt:  model.Now(),
	})
}

func (u *Usecase) checkRelated(ctx context.Context, n *model.Notification, categories, genres, castMembers []uuid.UUID) error {
	checks := []struct {
		field  string
		label  string
		finder RelatedFinder
		ids    []uuid.UUID
	}{
		{"categories_id", "categories", u.categories, categories},
		{"genres_id", "genres", u.genres, genres},
		{"cast_members_id", "cast members", u.castMembers, castMembers},
	}

	for _, c := range checks {
		if len(c.ids) == 0 {
			continue
		}
		found, err := c.finder.IDsByIDs(ctx, c.ids)
		if err != nil {
			return wrap(err)
		}
		if missing := model.Missing(c.ids, found); len(missing) > 0 {
			n.Add(c.field, fmt.Sprintf("related %s id (or ids) not found: %s", c.label, model.JoinIDs(missing)))
		}
	}
	return nil
}

func (u *Usecase) deriveThumbHalf(assets Assets) Assets {
	if assets.ThumbHalf != nil || assets.Thumb == nil || u.thumbs == nil {
		return assets
	}
	half, err := u.thumbs.Half(*assets.Thumb)
	if err != nil {
		u.logger.Debug("half thumbnail skipped", slog.String("error", err.Error()))
		return assets
	}
	assets.ThumbHalf = &half
	return assets
}

// attach uploads every file and points the video at the new keys. It returns
// the keys written so far, even on error, and the paths they replaced.
func (u *Usecase) attach(ctx context.Context, v *model.Video, assets Assets) (uploaded, replaced []string, err error) {
	for _, a := range assets.list() {
		key := objectKey(v.ID, a.kind, a.file)
		fullKey, err := u.storage.Save(ctx, key, *a.file)
		if err != nil {
			return uploaded, nil, fmt.Errorf("failed to upload %s: %w", a.kind, err)
		}
		uploaded = append(uploaded, fullKey)

		previous, err := setAsset(v, a.kind, fullKey)
		if err != nil {
			return uploaded, nil, err
		}
		if previous != "" && previous != fullKey {
			replaced = append(replaced, previous)
		}
	}
	return uploaded, replaced, nil
}

func (u *Usecase) markSentToEncode(v *model.Video, assets Assets) error {
	if assets.Media == nil || u.encoder == nil {
		return nil
	}
	return v.UpdateAsSentToEncode()
}

// requestEncode runs after commit. When the request cannot be queued the
// media is marked as errored so it can be uploaded again.
func (u *Usecase) requestEncode(ctx context.Context, v *model.Video, assets Assets) {
	if assets.Media == nil || u.encoder == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)

	err := u.encoder.Publish(ctx, model.EncodeRequest{
		VideoID:  v.ID,
		Kind:     model.AssetMedia,
		FilePath: v.Media.FilePath,
	})
	if err == nil {
		return
	}
	u.logger.Error("failed to request encoding",
		slog.String("id", v.ID.String()),
		slog.String("error", err.Error()))

	if err := v.UpdateAsEncodingError(); err != nil {
		return
	}
	err = u.tx.WithinTx(ctx, func(ctx context.Context) error {
		return u.repository.Update(ctx, v)
	})
	if err != nil {
		u.logger.Error("media left in processing",
			slog.String("id", v.ID.String()),
			slog.String("error", err.Error()))
		return
	}
	u.publishStatus(v)
}

// discard removes keys from the store. Keys that cannot be removed now are
// handed to the orphan set for a later sweep.
func (u *Usecase) discard(ctx context.Context, keys []string) {
	if len(keys) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)

	var left []string
	for _, k := range keys {
		if err := u.storage.Delete(ctx, k); err != nil {
			u.logger.Warn("asset delete failed", slog.String("key", k), slog.String("error", err.Error()))
			left = append(left, k)
		}
	}
	if len(left) == 0 || u.orphans == nil {
		return
	}
	if err := u.orphans.Add(ctx, left...); err != nil {
		u.logger.Error("orphan assets lost", slog.Any("keys", left), slog.String("error", err.Error()))
	}
}

func objectKey(id uuid.UUID, kind model.AssetKind, f *model.File) string {
	key := fmt.Sprintf("%s/%s-%s", id, kind, uuid.New())
	if ext := f.Extension(); ext != "" {
		key += "." + ext
	}
	return key
}

func setAsset(v *model.Video, kind model.AssetKind, path string) (string, error) {
	previous := assetPath(v, kind)
	switch kind {
	case model.AssetThumb:
		return previous, v.UpdateThumb(path)
	case model.AssetThumbHalf:
		return previous, v.UpdateThumbHalf(path)
	case model.AssetBanner:
		return previous, v.UpdateBanner(path)
	case model.AssetMedia:
		return previous, v.UpdateMedia(path)
	case model.AssetTrailer:
		return previous, v.UpdateTrailer(path)
	}
	return "", fmt.Errorf("%w %q", ErrUnknownKind, kind)
}

func assetPath(v *model.Video, kind model.AssetKind) string {
	switch kind {
	case model.AssetThumb:
		if v.Thumb != nil {
			return v.Thumb.Path
		}
	case model.AssetThumbHalf:
		if v.ThumbHalf != nil {
			return v.ThumbHalf.Path
		}
	case model.AssetBanner:
		if v.Banner != nil {
			return v.Banner.Path
		}
	case model.AssetMedia:
		if v.Media != nil {
			return v.Media.FilePath
		}
	case model.AssetTrailer:
		if v.Trailer != nil {
			return v.Trailer.FilePath
		}
	}
	return ""
}

func assetPaths(v *model.Video) []string {
	var out []string
	for _, k := range []model.AssetKind{
		model.AssetThumb, model.AssetThumbHalf, model.AssetBanner, model.AssetMedia, model.AssetTrailer,
	} {
		if p := assetPath(v, k); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func wrap(err error) error {
	if model.IsDomain(err) {
		return err
	}
	return errors.Join(ErrInternal, err)
}
