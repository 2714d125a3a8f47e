package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/C4ndyFl4mes/dt207g-project/internal/apperr"
	"github.com/C4ndyFl4mes/dt207g-project/internal/data/entity"
	"github.com/C4ndyFl4mes/dt207g-project/internal/data/repository"
	"github.com/C4ndyFl4mes/dt207g-project/internal/dto/request"

	"github.com/google/uuid"
)

func seedCategory(t *testing.T, repo *repository.Repository, name string) *entity.Category {
	t.Helper()
	now := time.Now()
	category := &entity.Category{
		Base: entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name: name,
		Slug: name,
	}
	if err := repo.Category.Create(context.Background(), category); err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return category
}

func seedProduct(t *testing.T, repo *repository.Repository, categoryID uuid.UUID, name string) *entity.Product {
	t.Helper()
	now := time.Now()
	product := &entity.Product{
		Base:       entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:       name,
		Slug:       name,
		Price:      10,
		CategoryID: categoryID,
	}
	if err := repo.Product.Create(context.Background(), product); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func TestCreateCategory(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	admin := seedUser(t, repo, "admin@example.com", "password123", entity.RoleAdmin)

	resp, err := svc.Category.CreateCategory(context.Background(), identityOf(admin),
		&request.CreateCategoryRequest{Name: "Home & Garden"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if resp.Slug != "home-garden" {
		t.Errorf("slug = %q, want home-garden", resp.Slug)
	}
}

func TestCreateCategoryDeniedForUser(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	user := seedUser(t, repo, "user@example.com", "password123", entity.RoleUser)

	_, err := svc.Category.CreateCategory(context.Background(), identityOf(user),
		&request.CreateCategoryRequest{Name: "Electronics"})
	if !apperr.IsKind(err, apperr.Forbidden) {
		t.Errorf("err = %v, want Forbidden", err)
	}
}

func TestCreateCategoryDuplicate(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	admin := seedUser(t, repo, "admin@example.com", "password123", entity.RoleAdmin)

	req := &request.CreateCategoryRequest{Name: "Electronics"}
	if _, err := svc.Category.CreateCategory(context.Background(), identityOf(admin), req); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Category.CreateCategory(context.Background(), identityOf(admin), req); !apperr.IsKind(err, apperr.Conflict) {
		t.Errorf("second create err = %v, want Conflict", err)
	}
}

func TestGetCategoryByNameOrSlug(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	admin := seedUser(t, repo, "admin@example.com", "password123", entity.RoleAdmin)

	created, err := svc.Category.CreateCategory(context.Background(), identityOf(admin),
		&request.CreateCategoryRequest{Name: "Home & Garden"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, lookup := range []string{"Home & Garden", "home-garden"} {
		got, err := svc.Category.GetCategory(context.Background(), lookup)
		if err != nil {
			t.Fatalf("GetCategory(%q): %v", lookup, err)
		}
		if got.ID != created.ID {
			t.Errorf("GetCategory(%q) returned %s, want %s", lookup, got.ID, created.ID)
		}
	}

	if _, err := svc.Category.GetCategory(context.Background(), "missing"); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("err = %v, want NotFound", err)
	}
}

// Deleting a category removes its products and every review on those
// products; everything outside the category is untouched.
func TestDeleteCategoryCascade(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	admin := seedUser(t, repo, "admin@example.com", "password123", entity.RoleAdmin)
	anna := seedUser(t, repo, "anna@example.com", "password123", entity.RoleUser)
	bert := seedUser(t, repo, "bert@example.com", "password123", entity.RoleUser)

	doomed := seedCategory(t, repo, "doomed")
	p1 := seedProduct(t, repo, doomed.ID, "p1")
	p2 := seedProduct(t, repo, doomed.ID, "p2")
	seedReview(t, repo, p1.ID, anna.ID, 5)
	seedReview(t, repo, p1.ID, bert.ID, 3)
	seedReview(t, repo, p2.ID, anna.ID, 4)

	survivor := seedCategory(t, repo, "survivor")
	p3 := seedProduct(t, repo, survivor.ID, "p3")
	keptReview := seedReview(t, repo, p3.ID, bert.ID, 2)

	if err := svc.Category.DeleteCategory(context.Background(), identityOf(admin), doomed.ID.String()); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}

	if c, _ := repo.Category.FindByID(context.Background(), doomed.ID); c != nil {
		t.Error("category still present")
	}
	for _, p := range []uuid.UUID{p1.ID, p2.ID} {
		if got, _ := repo.Product.FindByID(context.Background(), p); got != nil {
			t.Errorf("product %s survived the cascade", p)
		}
	}

	reviews := repo.Review.(*fakeReviewRepo)
	if len(reviews.reviews) != 1 {
		t.Fatalf("review count = %d, want 1", len(reviews.reviews))
	}
	if _, ok := reviews.reviews[keptReview.ID]; !ok {
		t.Error("review outside the category was cascaded away")
	}
	if got, _ := repo.Product.FindByID(context.Background(), p3.ID); got == nil {
		t.Error("product outside the category was cascaded away")
	}
}

// When a later cascade step fails the category stays deleted and the
// failure surfaces as a server fault.
func TestDeleteCategoryCascadePartialFailure(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	admin := seedUser(t, repo, "admin@example.com", "password123", entity.RoleAdmin)

	doomed := seedCategory(t, repo, "doomed")
	seedProduct(t, repo, doomed.ID, "p1")

	repo.Product.(*fakeProductRepo).failDeleteByCategory = true

	err := svc.Category.DeleteCategory(context.Background(), identityOf(admin), doomed.ID.String())
	if !apperr.IsKind(err, apperr.ServerFault) {
		t.Fatalf("err = %v, want ServerFault", err)
	}

	// No rollback: the category row is gone.
	if c, _ := repo.Category.FindByID(context.Background(), doomed.ID); c != nil {
		t.Error("category row restored after failed cascade")
	}
}

func TestDeleteCategoryDeniedForUser(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	user := seedUser(t, repo, "user@example.com", "password123", entity.RoleUser)
	category := seedCategory(t, repo, "electronics")

	if err := svc.Category.DeleteCategory(context.Background(), identityOf(user), category.ID.String()); !apperr.IsKind(err, apperr.Forbidden) {
		t.Errorf("err = %v, want Forbidden", err)
	}
}

func TestUpdateCategoryRefreshesSlug(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	admin := seedUser(t, repo, "admin@example.com", "password123", entity.RoleAdmin)
	category := seedCategory(t, repo, "books")

	resp, err := svc.Category.UpdateCategory(context.Background(), identityOf(admin), category.ID.String(),
		&request.UpdateCategoryRequest{Name: "Böcker & Papper"})
	if err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}
	if resp.Slug != "bocker-papper" {
		t.Errorf("slug = %q, want bocker-papper", resp.Slug)
	}
}
