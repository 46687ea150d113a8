package planner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"kitchenmate/internal/models"
	"kitchenmate/internal/recipes"
)

// PlanStore persists plan headers, slot assignments and check marks
type PlanStore interface {
	CreatePlan(ctx context.Context, rec *models.MealPlanRecord) error
	GetPlan(ctx context.Context, planID string) (*models.MealPlanRecord, error)
	ListPlans(ctx context.Context, userID string) ([]models.MealPlanRecord, error)
	SaveSlot(ctx context.Context, recordID uint, item models.MealPlanItem) error
	// SaveSlots writes all items or none of them
	SaveSlots(ctx context.Context, recordID uint, items []models.MealPlanItem) error
	DeleteSlot(ctx context.Context, recordID uint, day, mealType string) error
	SetChecked(ctx context.Context, recordID uint, ingredient string, checked bool) error
	// PruneChecks deletes the check marks of ingredients not in keep
	PruneChecks(ctx context.Context, recordID uint, keep []string) error
}

// Notifier receives the new view of a plan after every change
type Notifier interface {
	Publish(planID string, view View)
}

// Recorder observes shopping list recomputes
type Recorder interface {
	ObserveRecompute(elapsed time.Duration, items int)
}

// Summary describes a stored plan in listings
type Summary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	WeekStart string `json:"week_start"`
	Meals     int    `json:"meals"`
}

// Service coordinates plan sessions with their durable storage. Sessions are
// loaded lazily and cached; all access goes through one mutex.
type Service struct {
	mu       sync.Mutex
	sessions map[string]*Session

	store    PlanStore
	recipes  recipes.Provider
	notifier Notifier
	recorder Recorder
	logger   *log.Logger
	now      func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithNotifier sets the subscriber fan-out for plan changes
func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithRecorder sets the recompute metrics sink
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a plan service
func NewService(store PlanStore, provider recipes.Provider, logger *log.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = log.Default()
	}
	s := &Service{
		sessions: make(map[string]*Session),
		store:    store,
		recipes:  provider,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a new empty plan. A zero weekStart means the current week.
func (s *Service) Create(ctx context.Context, userID, name string, weekStart time.Time) (View, error) {
	if weekStart.IsZero() {
		weekStart = s.now()
	}
	if name == "" {
		name = "Weekly plan"
	}

	sess := s.newSession(uuid.NewString(), userID, name, weekStart)
	rec := &models.MealPlanRecord{
		PlanID:    sess.ID,
		UserID:    userID,
		Name:      name,
		WeekStart: sess.WeekStart.Format(DateLayout),
	}
	if err := s.store.CreatePlan(ctx, rec); err != nil {
		return View{}, fmt.Errorf("failed to create meal plan: %w", err)
	}
	sess.RecordID = rec.ID

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	view := sess.View()
	s.mu.Unlock()

	s.logger.Info("meal plan created", "plan", sess.ID, "user", userID)
	return view, nil
}

// List returns the stored plans of a user
func (s *Service) List(ctx context.Context, userID string) ([]Summary, error) {
	records, err := s.store.ListPlans(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}
	out := make([]Summary, 0, len(records))
	for _, rec := range records {
		out = append(out, Summary{
			ID:        rec.PlanID,
			Name:      rec.Name,
			WeekStart: rec.WeekStart,
			Meals:     len(rec.Items),
		})
	}
	return out, nil
}

// Get returns the current view of a plan
func (s *Service) Get(ctx context.Context, userID, planID string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, userID, planID)
	if err != nil {
		return View{}, err
	}
	return sess.View(), nil
}

// Assign puts a recipe into a slot of the plan
func (s *Service) Assign(ctx context.Context, userID, planID string, day models.Day, mealType models.MealType, recipeID uint, servings int) (View, error) {
	recipe, err := s.recipes.GetRecipe(ctx, recipeID)
	if err != nil {
		return View{}, err
	}

	return s.mutate(ctx, userID, planID, func(sess *Session) error {
		if err := sess.Assign(day, mealType, recipe, servings); err != nil {
			return err
		}
		slot, _ := sess.plan.Slot(day, mealType)
		err := s.store.SaveSlot(ctx, sess.RecordID, models.MealPlanItem{
			Day:      string(day),
			MealType: string(mealType),
			RecipeID: recipe.ID,
			Servings: slot.Servings,
		})
		if err != nil {
			return err
		}
		return s.pruneChecks(ctx, sess)
	})
}

// Unassign clears a slot of the plan
func (s *Service) Unassign(ctx context.Context, userID, planID string, day models.Day, mealType models.MealType) (View, error) {
	return s.mutate(ctx, userID, planID, func(sess *Session) error {
		if err := sess.Unassign(day, mealType); err != nil {
			return err
		}
		if err := s.store.DeleteSlot(ctx, sess.RecordID, string(day), string(mealType)); err != nil {
			return err
		}
		return s.pruneChecks(ctx, sess)
	})
}

// Toggle flips the check mark of a shopping list ingredient
func (s *Service) Toggle(ctx context.Context, userID, planID, ingredient string) (View, error) {
	return s.mutate(ctx, userID, planID, func(sess *Session) error {
		checked, err := sess.Toggle(ingredient)
		if err != nil {
			return err
		}
		return s.store.SetChecked(ctx, sess.RecordID, ingredient, checked)
	})
}

// Refresh recomputes the derived views of a plan
func (s *Service) Refresh(ctx context.Context, userID, planID string) (View, error) {
	return s.mutate(ctx, userID, planID, func(sess *Session) error {
		sess.Recompute()
		return nil
	})
}

// Seed fills the plan with the demo week, overwriting the slots it uses
func (s *Service) Seed(ctx context.Context, userID, planID string) (View, error) {
	demo, err := BuildPlan(ctx, s.recipes, DemoWeek)
	if err != nil {
		return View{}, err
	}

	return s.mutate(ctx, userID, planID, func(sess *Session) error {
		items := make([]models.MealPlanItem, 0, len(DemoWeek))
		for _, a := range DemoWeek {
			slot, _ := demo.Slot(a.Day, a.MealType)
			if err := sess.Assign(a.Day, a.MealType, slot.Recipe, slot.Servings); err != nil {
				return err
			}
			items = append(items, models.MealPlanItem{
				Day:      string(a.Day),
				MealType: string(a.MealType),
				RecipeID: slot.Recipe.ID,
				Servings: slot.Servings,
			})
		}
		if err := s.store.SaveSlots(ctx, sess.RecordID, items); err != nil {
			return err
		}
		return s.pruneChecks(ctx, sess)
	})
}

// pruneChecks removes stored check marks whose ingredient left the list
func (s *Service) pruneChecks(ctx context.Context, sess *Session) error {
	keep := make([]string, 0, len(sess.shopping))
	for _, entry := range sess.shopping {
		keep = append(keep, entry.Name)
	}
	return s.store.PruneChecks(ctx, sess.RecordID, keep)
}

// rejected reports errors raised by validation before a session changes
func rejected(err error) bool {
	return errors.Is(err, ErrInvalidDay) ||
		errors.Is(err, ErrInvalidMealType) ||
		errors.Is(err, ErrInvalidServings) ||
		errors.Is(err, ErrRecipeRequired) ||
		errors.Is(err, ErrItemNotFound)
}

// mutate applies fn to the session under the lock and publishes the result.
// A failed write evicts the session so the next access reloads it from the
// store. Rejected input leaves the session untouched and cached.
func (s *Service) mutate(ctx context.Context, userID, planID string, fn func(*Session) error) (View, error) {
	s.mu.Lock()
	sess, err := s.session(ctx, userID, planID)
	if err != nil {
		s.mu.Unlock()
		return View{}, err
	}
	if err := fn(sess); err != nil {
		if !rejected(err) {
			delete(s.sessions, planID)
		}
		s.mu.Unlock()
		return View{}, err
	}
	view := sess.View()
	s.mu.Unlock()

	if s.notifier != nil {
		s.notifier.Publish(planID, view)
	}
	return view, nil
}

// session returns the cached session or restores it from the store.
// Callers hold s.mu.
func (s *Service) session(ctx context.Context, userID, planID string) (*Session, error) {
	if sess, ok := s.sessions[planID]; ok {
		if sess.UserID != userID {
			return nil, ErrPlanNotFound
		}
		return sess, nil
	}

	rec, err := s.store.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if rec.UserID != userID {
		return nil, ErrPlanNotFound
	}

	weekStart, err := time.Parse(DateLayout, rec.WeekStart)
	if err != nil {
		s.logger.Warn("unparseable week start, using current week", "plan", planID, "week_start", rec.WeekStart, "err", err)
		weekStart = s.now()
	}
	sess := s.newSession(rec.PlanID, rec.UserID, rec.Name, weekStart)
	sess.RecordID = rec.ID

	for _, item := range rec.Items {
		recipe, err := s.recipes.GetRecipe(ctx, item.RecipeID)
		if errors.Is(err, recipes.ErrRecipeNotFound) {
			s.logger.Warn("dropping slot with unknown recipe", "plan", planID, "recipe", item.RecipeID)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to restore meal plan: %w", err)
		}
		sess.plan.Assign(models.Day(item.Day), models.MealType(item.MealType), recipe, item.Servings)
	}
	for _, check := range rec.Checks {
		if check.Checked {
			sess.checks[check.Ingredient] = true
		}
	}
	sess.Recompute()

	s.sessions[planID] = sess
	s.logger.Debug("meal plan restored", "plan", planID, "meals", len(rec.Items))
	return sess, nil
}

func (s *Service) newSession(id, userID, name string, weekStart time.Time) *Session {
	sess := NewSession(id, userID, name, weekStart)
	if s.recorder != nil {
		sess.onRecompute = s.recorder.ObserveRecompute
	}
	return sess
}
