package usecase

import (
	"context"
	"errors"

	"github.com/C4ndyFl4mes/dt207g-project/internal/data/entity"
	"github.com/C4ndyFl4mes/dt207g-project/internal/data/repository"
	"github.com/C4ndyFl4mes/dt207g-project/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory repositories backing the service tests. They enforce the
// same unique constraints the database schema does, so the ErrDuplicate
// paths behave like production.

var errFakeStorage = errors.New("storage unavailable")

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
	order []uuid.UUID

	findByIDCalls  int
	findByIDsCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	clone := *user
	f.users[user.ID] = &clone
	f.order = append(f.order, user.ID)
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	f.findByIDCalls++
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.User, error) {
	f.findByIDsCalls++
	var out []*entity.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			clone := *u
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for i := offset; i < len(f.order) && len(out) < limit; i++ {
		if u, ok := f.users[f.order[i]]; ok {
			clone := *u
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) CountByRole(_ context.Context, role entity.Role) (int64, error) {
	var n int64
	for _, u := range f.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	for id, u := range f.users {
		if id != user.ID && u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.users, id)
	return nil
}

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
	order      []uuid.UUID
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uuid.UUID]*entity.Category)}
}

func (f *fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	for _, c := range f.categories {
		if c.Name == category.Name || c.Slug == category.Slug {
			return repository.ErrDuplicate
		}
	}
	clone := *category
	f.categories[category.ID] = &clone
	f.order = append(f.order, category.ID)
	return nil
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, nil
	}
	clone := *c
	return &clone, nil
}

func (f *fakeCategoryRepo) FindByName(_ context.Context, name string) (*entity.Category, error) {
	for _, c := range f.categories {
		if c.Name == name || c.Slug == name {
			clone := *c
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Category, error) {
	var out []*entity.Category
	for i := offset; i < len(f.order) && len(out) < limit; i++ {
		if c, ok := f.categories[f.order[i]]; ok {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.categories)), nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, category *entity.Category) error {
	for id, c := range f.categories {
		if id != category.ID && (c.Name == category.Name || c.Slug == category.Slug) {
			return repository.ErrDuplicate
		}
	}
	clone := *category
	f.categories[category.ID] = &clone
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.categories, id)
	return nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
	order    []uuid.UUID

	failDeleteByCategory bool
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
}

func (f *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	for _, p := range f.products {
		if p.CategoryID == product.CategoryID && p.Name == product.Name {
			return repository.ErrDuplicate
		}
	}
	clone := *product
	f.products[product.ID] = &clone
	f.order = append(f.order, product.ID)
	return nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (f *fakeProductRepo) FindByCategoryAndName(_ context.Context, categoryID uuid.UUID, name string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.CategoryID == categoryID && (p.Name == name || p.Slug == name) {
			clone := *p
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for i := offset; i < len(f.order) && len(out) < limit; i++ {
		if p, ok := f.products[f.order[i]]; ok {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) FindByCategoryID(_ context.Context, categoryID uuid.UUID, limit, offset int) ([]*entity.Product, error) {
	var matched []*entity.Product
	for _, id := range f.order {
		if p, ok := f.products[id]; ok && p.CategoryID == categoryID {
			clone := *p
			matched = append(matched, &clone)
		}
	}
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (f *fakeProductRepo) FindIDsByCategoryID(_ context.Context, categoryID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, id := range f.order {
		if p, ok := f.products[id]; ok && p.CategoryID == categoryID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeProductRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.products)), nil
}

func (f *fakeProductRepo) CountByCategoryID(_ context.Context, categoryID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range f.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (f *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	for id, p := range f.products {
		if id != product.ID && p.CategoryID == product.CategoryID && p.Name == product.Name {
			return repository.ErrDuplicate
		}
	}
	clone := *product
	f.products[product.ID] = &clone
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) DeleteByCategoryID(_ context.Context, categoryID uuid.UUID) (int64, error) {
	if f.failDeleteByCategory {
		return 0, errFakeStorage
	}
	var removed int64
	for id, p := range f.products {
		if p.CategoryID == categoryID {
			delete(f.products, id)
			removed++
		}
	}
	return removed, nil
}

type fakeReviewRepo struct {
	reviews map[uuid.UUID]*entity.Review
	order   []uuid.UUID
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[uuid.UUID]*entity.Review)}
}

func (f *fakeReviewRepo) Create(_ context.Context, review *entity.Review) error {
	for _, r := range f.reviews {
		if r.ProductID == review.ProductID && r.CreatedBy == review.CreatedBy {
			return repository.ErrDuplicate
		}
	}
	clone := *review
	f.reviews[review.ID] = &clone
	f.order = append(f.order, review.ID)
	return nil
}

func (f *fakeReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return nil, nil
	}
	clone := *r
	return &clone, nil
}

func (f *fakeReviewRepo) FindByProductID(_ context.Context, productID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	var matched []*entity.Review
	for _, id := range f.order {
		if r, ok := f.reviews[id]; ok && r.ProductID == productID {
			clone := *r
			matched = append(matched, &clone)
		}
	}
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (f *fakeReviewRepo) FindByUserAndProduct(_ context.Context, userID, productID uuid.UUID) (*entity.Review, error) {
	for _, r := range f.reviews {
		if r.CreatedBy == userID && r.ProductID == productID {
			clone := *r
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) CountByProductID(_ context.Context, productID uuid.UUID) (int64, error) {
	var n int64
	for _, r := range f.reviews {
		if r.ProductID == productID {
			n++
		}
	}
	return n, nil
}

func (f *fakeReviewRepo) Update(_ context.Context, review *entity.Review) error {
	clone := *review
	f.reviews[review.ID] = &clone
	return nil
}

func (f *fakeReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.reviews, id)
	return nil
}

func (f *fakeReviewRepo) DeleteByProductIDs(_ context.Context, productIDs []uuid.UUID) (int64, error) {
	member := make(map[uuid.UUID]struct{}, len(productIDs))
	for _, id := range productIDs {
		member[id] = struct{}{}
	}
	var removed int64
	for id, r := range f.reviews {
		if _, ok := member[r.ProductID]; ok {
			delete(f.reviews, id)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeReviewRepo) DeleteByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	var removed int64
	for id, r := range f.reviews {
		if r.CreatedBy == userID {
			delete(f.reviews, id)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeReviewRepo) AverageRating(_ context.Context, productID uuid.UUID) (float64, error) {
	var sum, n int
	for _, r := range f.reviews {
		if r.ProductID == productID {
			sum += r.Rating
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}

type fakeAuditRepo struct {
	entries []*entity.AuditLog
}

func (f *fakeAuditRepo) Insert(_ context.Context, entry *entity.AuditLog) error {
	f.entries = append(f.entries, entry)
	return nil
}

func newFakeRepository() *repository.Repository {
	return &repository.Repository{
		User:     newFakeUserRepo(),
		Category: newFakeCategoryRepo(),
		Product:  newFakeProductRepo(),
		Review:   newFakeReviewRepo(),
		AuditLog: &fakeAuditRepo{},
	}
}

func testConfig() *utils.Config {
	return &utils.Config{
		JWT: utils.JWTConfig{Secret: "service-test-secret"},
		Root: utils.RootConfig{
			Firstname: "Root",
			Lastname:  "Account",
			Email:     "root@example.com",
			Password:  "root-password",
		},
	}
}

func newTestService(repo *repository.Repository) *Service {
	return NewService(repo, testConfig(), zap.NewNop())
}
