// Package users keeps the registry of local user records.
package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/transconnection/internal/client/storage"
	"github.com/iudanet/transconnection/internal/crypto"
	"github.com/iudanet/transconnection/internal/models"
	"github.com/iudanet/transconnection/internal/validation"
)

// Session is the current-user slot the directory keeps in sync
type Session interface {
	Set(ctx context.Context, user *models.User) error
	Refresh(ctx context.Context, user *models.User) error
	Current(ctx context.Context) (*models.User, error)
	Clear(ctx context.Context) error
}

// Directory хранит список пользователей под ключом "users".
// Все изменяющие операции выполняются под mu: проверка уникальности и
// запись происходят в одной критической секции.
type Directory struct {
	store   storage.KeyValueStore
	session Session
	logger  *slog.Logger
	now     func() time.Time
	newID   func() (string, error)

	mu sync.Mutex
}

// Option настраивает Directory
type Option func(*Directory)

// WithClock подменяет источник времени
func WithClock(now func() time.Time) Option {
	return func(d *Directory) { d.now = now }
}

// WithIDGenerator подменяет генератор идентификаторов
func WithIDGenerator(gen func() (string, error)) Option {
	return func(d *Directory) { d.newID = gen }
}

// WithLogger задаёт логгер
func WithLogger(logger *slog.Logger) Option {
	return func(d *Directory) { d.logger = logger }
}

// New creates a user directory
func New(store storage.KeyValueStore, session Session, opts ...Option) *Directory {
	d := &Directory{
		store:   store,
		session: session,
		logger:  slog.Default(),
		now:     time.Now,
		newID:   newUUIDv7,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	return d
}

func newUUIDv7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate user id: %w", err)
	}
	return id.String(), nil
}

// RegisterInput поля формы регистрации
type RegisterInput struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Password    string
}

// UserUpdate частичное обновление записи; nil и пустые строки не меняют поле
type UserUpdate struct {
	FirstName    *string
	LastName     *string
	Email        *string
	PhoneNumber  *string
	Password     *string
	Subscription *models.Subscription
}

// Export снимок всех данных пользователей
type Export struct {
	AllUsers    []models.User `json:"allUsers"`
	CurrentUser *models.User  `json:"currentUser"`
	TotalUsers  int           `json:"totalUsers"`
	ExportDate  time.Time     `json:"exportDate"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizeName(first, last string) string {
	return strings.ToLower(strings.TrimSpace(first)) + " " + strings.ToLower(strings.TrimSpace(last))
}

// load reads the user list; a missing key is an empty list
func (d *Directory) load(ctx context.Context) ([]models.User, error) {
	var list []models.User
	err := d.store.Get(ctx, storage.KeyUsers, &list)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return []models.User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	return list, nil
}

func (d *Directory) save(ctx context.Context, list []models.User) error {
	if err := d.store.Set(ctx, storage.KeyUsers, list); err != nil {
		return fmt.Errorf("failed to save users: %w", err)
	}
	return nil
}

// ListAll returns every user in registration order
func (d *Directory) ListAll(ctx context.Context) ([]models.User, error) {
	return d.load(ctx)
}

// EmailExists reports whether a user has email, ignoring case and
// surrounding whitespace
func (d *Directory) EmailExists(ctx context.Context, email string) (bool, error) {
	list, err := d.load(ctx)
	if err != nil {
		return false, err
	}
	return indexByEmail(list, email) >= 0, nil
}

// NameExists reports whether a user has the first and last name,
// ignoring case and surrounding whitespace
func (d *Directory) NameExists(ctx context.Context, firstName, lastName string) (bool, error) {
	list, err := d.load(ctx)
	if err != nil {
		return false, err
	}
	return indexByName(list, firstName, lastName) >= 0, nil
}

func indexByEmail(list []models.User, email string) int {
	email = normalizeEmail(email)
	for i := range list {
		if normalizeEmail(list[i].Email) == email {
			return i
		}
	}
	return -1
}

func indexByName(list []models.User, firstName, lastName string) int {
	name := normalizeName(firstName, lastName)
	for i := range list {
		if normalizeName(list[i].FirstName, list[i].LastName) == name {
			return i
		}
	}
	return -1
}

func indexByID(list []models.User, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

// Register validates in, creates the user and signs them in
func (d *Directory) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	err := validation.ValidateRegistration(validation.Registration{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Password:    in.Password,
	})
	if err != nil {
		return nil, err
	}

	// хешируем до захвата блокировки: argon2 занимает заметное время
	passwordHash, err := crypto.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	list, err := d.load(ctx)
	if err != nil {
		return nil, err
	}

	if indexByEmail(list, in.Email) >= 0 {
		return nil, ErrDuplicateEmail
	}
	if indexByName(list, in.FirstName, in.LastName) >= 0 {
		return nil, ErrDuplicateName
	}

	id, err := d.newID()
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:          id,
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		Email:       normalizeEmail(in.Email),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		Password:    passwordHash,
		CreatedAt:   d.now().UTC(),
	}

	list = append(list, user)
	if err := d.save(ctx, list); err != nil {
		return nil, err
	}

	if err := d.session.Set(ctx, &user); err != nil {
		return nil, err
	}

	d.logger.Debug("user registered", "user_id", user.ID)

	return user.Clone(), nil
}

// Get returns the user with id
func (d *Directory) Get(ctx context.Context, id string) (*models.User, error) {
	list, err := d.load(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexByID(list, id)
	if idx < 0 {
		return nil, ErrUserNotFound
	}
	return list[idx].Clone(), nil
}

// FindByEmail returns the user with email, ignoring case
func (d *Directory) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	list, err := d.load(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexByEmail(list, email)
	if idx < 0 {
		return nil, ErrUserNotFound
	}
	return list[idx].Clone(), nil
}

// FindByIDOrPhone returns the user whose id equals value, otherwise the
// first user whose phone number equals value, otherwise nil.
func (d *Directory) FindByIDOrPhone(ctx context.Context, value string) (*models.User, error) {
	list, err := d.load(ctx)
	if err != nil {
		return nil, err
	}

	if idx := indexByID(list, value); idx >= 0 {
		return list[idx].Clone(), nil
	}
	for i := range list {
		if list[i].PhoneNumber == value {
			return list[i].Clone(), nil
		}
	}

	return nil, nil
}

// Update merges upd into the user with id and refreshes the session copy
// when that user is signed in.
func (d *Directory) Update(ctx context.Context, id string, upd UserUpdate) (*models.User, error) {
	var passwordHash string
	if provided(upd.Password) {
		h, err := crypto.HashPassword(*upd.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		passwordHash = h
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	list, err := d.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexByID(list, id)
	if idx < 0 {
		return nil, ErrUserNotFound
	}
	user := list[idx].Clone()

	if provided(upd.Email) && normalizeEmail(*upd.Email) != normalizeEmail(user.Email) {
		if indexByEmail(list, *upd.Email) >= 0 {
			return nil, ErrDuplicateEmail
		}
		user.Email = normalizeEmail(*upd.Email)
	}

	if provided(upd.FirstName) || provided(upd.LastName) {
		first, last := user.FirstName, user.LastName
		if provided(upd.FirstName) {
			first = strings.TrimSpace(*upd.FirstName)
		}
		if provided(upd.LastName) {
			last = strings.TrimSpace(*upd.LastName)
		}
		// смена только регистра своего имени не конфликтует сама с собой
		if normalizeName(first, last) != normalizeName(user.FirstName, user.LastName) &&
			indexByName(list, first, last) >= 0 {
			return nil, ErrDuplicateName
		}
		user.FirstName, user.LastName = first, last
	}

	if provided(upd.PhoneNumber) {
		user.PhoneNumber = strings.TrimSpace(*upd.PhoneNumber)
	}
	if passwordHash != "" {
		user.Password = passwordHash
	}
	if upd.Subscription != nil {
		sub := *upd.Subscription
		user.Subscription = &sub
	}

	list[idx] = *user
	if err := d.save(ctx, list); err != nil {
		return nil, err
	}

	if err := d.session.Refresh(ctx, user); err != nil {
		return nil, err
	}

	return user.Clone(), nil
}

func provided(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

// ClearAll removes every user and the session
func (d *Directory) ClearAll(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.store.Remove(ctx, storage.KeyUsers); err != nil {
		return fmt.Errorf("failed to remove users: %w", err)
	}
	if err := d.session.Clear(ctx); err != nil {
		return err
	}

	d.logger.Info("all user data cleared")
	return nil
}

// Export returns a snapshot of all users and the session
func (d *Directory) Export(ctx context.Context) (*Export, error) {
	list, err := d.load(ctx)
	if err != nil {
		return nil, err
	}
	current, err := d.session.Current(ctx)
	if err != nil {
		return nil, err
	}
	return &Export{
		AllUsers:    list,
		CurrentUser: current,
		TotalUsers:  len(list),
		ExportDate:  d.now().UTC(),
	}, nil
}
