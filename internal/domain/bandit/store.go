// Package bandit implements the per-(user, dish) LinUCB contextual bandit
// that scores candidate dishes and learns from like/dislike feedback.
package bandit

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/Lalit-mahajan-1/NutriAi/internal/domain/catalog"
	"github.com/Lalit-mahajan-1/NutriAi/internal/domain/nutrition"
)

const (
	// DefaultAlpha is the UCB exploration coefficient.
	DefaultAlpha = 0.4

	// DefaultMaxPerWeek caps how often one dish may appear in a weekly plan.
	DefaultMaxPerWeek = 2

	// unseenBonus nudges selection toward dishes with no feedback history.
	unseenBonus = 0.05

	// Reward blend: explicit feedback dominates, macro fit refines.
	feedbackWeight = 0.7
	macroFitWeight = 0.3
)

// Feedback is the explicit user signal on a recommended dish.
type Feedback int

const (
	FeedbackDislike Feedback = -1
	FeedbackNeutral Feedback = 0
	FeedbackLike    Feedback = 1
)

// score maps feedback onto [0,1] for the reward blend.
func (f Feedback) score() float64 {
	switch {
	case f > 0:
		return 1.0
	case f < 0:
		return 0.0
	default:
		return 0.5
	}
}

// armState is the LinUCB ridge-regression state for one (user, dish) pair.
// A starts as the identity and only ever receives positive semi-definite
// rank-1 additions, so it stays symmetric positive definite and invertible.
type armState struct {
	a *matrix
	b []float64
}

func newArmState() *armState {
	return &armState{a: newIdentity(Dim), b: make([]float64, Dim)}
}

// userArms holds one user's arms behind a per-user mutex so that feedback
// updates on the same user are serialized while different users proceed
// independently.
type userArms struct {
	mu   sync.Mutex
	arms map[string]*armState
}

type pairKey struct {
	userID string
	dish   string
}

// Store is the process-wide bandit state: arm matrices per (user, dish) plus
// like/dislike counters. It is created at service start, optionally restored
// from a snapshot, mutated only through SelectDish and Update, and persisted
// through Snapshot.
//
// Lock order: s.mu is never acquired while holding a userArms mutex.
type Store struct {
	alpha float64

	mu       sync.RWMutex
	users    map[string]*userArms
	likes    map[pairKey]int
	dislikes map[pairKey]int
}

// NewStore creates an empty store with the given exploration coefficient.
// A non-positive alpha falls back to DefaultAlpha.
func NewStore(alpha float64) *Store {
	if alpha <= 0 {
		alpha = DefaultAlpha
	}
	return &Store{
		alpha:    alpha,
		users:    make(map[string]*userArms),
		likes:    make(map[pairKey]int),
		dislikes: make(map[pairKey]int),
	}
}

// Alpha returns the exploration coefficient.
func (s *Store) Alpha() float64 {
	return s.alpha
}

// Likes returns the cumulative like count for a (user, dish) pair.
func (s *Store) Likes(userID, dish string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.likes[pairKey{userID, dish}]
}

// Dislikes returns the cumulative dislike count for a (user, dish) pair.
func (s *Store) Dislikes(userID, dish string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dislikes[pairKey{userID, dish}]
}

func (s *Store) userFor(userID string) *userArms {
	s.mu.RLock()
	u, ok := s.users[userID]
	s.mu.RUnlock()
	if ok {
		return u
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok = s.users[userID]; ok {
		return u
	}
	u = &userArms{arms: make(map[string]*armState)}
	s.users[userID] = u
	return u
}

// SelectDish scores the candidates with the LinUCB upper confidence bound
// and returns the best one. Candidates the user has ever disliked are vetoed
// outright, as are dishes already at the weekly repetition cap. The second
// return value is false when no candidate survives.
//
// Ties break in favor of the first candidate seen, so selection is
// deterministic for a fixed catalog order.
func (s *Store) SelectDish(
	p nutrition.Profile,
	daily nutrition.MacroTargets,
	slot nutrition.MealSlot,
	candidates []catalog.Dish,
	weeklyCounts map[string]int,
	maxPerWeek int,
) (catalog.Dish, bool) {
	if maxPerWeek <= 0 {
		maxPerWeek = DefaultMaxPerWeek
	}

	// Snapshot the feedback counters up front; holding s.mu while the
	// per-user mutex is held would invert the lock order.
	type candidateInfo struct {
		dish   catalog.Dish
		unseen bool
	}
	eligible := make([]candidateInfo, 0, len(candidates))

	s.mu.RLock()
	for _, d := range candidates {
		key := pairKey{p.UserID, d.Name}
		if s.dislikes[key] > 0 {
			continue // an explicit dislike is a permanent veto
		}
		if weeklyCounts[d.Name] >= maxPerWeek {
			continue
		}
		seen := s.likes[key] + s.dislikes[key]
		eligible = append(eligible, candidateInfo{dish: d, unseen: seen == 0})
	}
	s.mu.RUnlock()

	if len(eligible) == 0 {
		return catalog.Dish{}, false
	}

	u := s.userFor(p.UserID)
	u.mu.Lock()
	defer u.mu.Unlock()

	var (
		best      catalog.Dish
		bestScore = 0.0
		found     = false
	)
	for _, c := range eligible {
		arm, ok := u.arms[c.dish.Name]
		if !ok {
			arm = newArmState()
			u.arms[c.dish.Name] = arm
		}

		x := BuildContext(p, daily, slot, c.dish)
		aInv, err := arm.a.inverse()
		if err != nil {
			// PD invariant violated; skip rather than corrupt the plan.
			continue
		}
		theta := aInv.mulVec(arm.b)
		mean := dot(theta, x)
		uncertainty := s.alpha * math.Sqrt(dot(x, aInv.mulVec(x)))

		score := mean + uncertainty
		if c.unseen {
			score += unseenBonus
		}

		if !found || score > bestScore {
			best = c.dish
			bestScore = score
			found = true
		}
	}
	return best, found
}

// Update applies one feedback event: it blends the explicit signal with how
// well the dish fits the meal's macro budget, then performs the rank-1
// ridge-regression update A += x·xᵗ, b += reward·x on the pair's arm.
// Updates to the same user's arms are serialized; the counters are bumped
// before the arm mutates so a dislike vetoes the dish immediately.
func (s *Store) Update(
	p nutrition.Profile,
	daily nutrition.MacroTargets,
	slot nutrition.MealSlot,
	dish catalog.Dish,
	fb Feedback,
) {
	key := pairKey{p.UserID, dish.Name}
	s.mu.Lock()
	switch {
	case fb > 0:
		s.likes[key]++
	case fb < 0:
		s.dislikes[key]++
	}
	s.mu.Unlock()

	reward := Reward(fb, MacroFit(nutrition.MealTargets(daily, slot), dish))
	x := BuildContext(p, daily, slot, dish)

	u := s.userFor(p.UserID)
	u.mu.Lock()
	defer u.mu.Unlock()

	arm, ok := u.arms[dish.Name]
	if !ok {
		arm = newArmState()
		u.arms[dish.Name] = arm
	}
	arm.a.addOuter(x)
	for i := range arm.b {
		arm.b[i] += reward * x[i]
	}
}

// Reward blends an explicit feedback score with the macro fit and clamps
// the result into [0,1].
func Reward(fb Feedback, macroFit float64) float64 {
	return clamp(feedbackWeight*fb.score()+macroFitWeight*macroFit, 0, 1)
}

// ArmSnapshot is the flat serializable form of one arm.
type ArmSnapshot struct {
	A [][]float64 `json:"A"`
	B []float64   `json:"b"`
}

// Snapshot is the flat serializable form of the whole store. Matrices are
// finite float64 values and round-trip exactly through encoding/json.
type Snapshot struct {
	Dim      int                               `json:"d"`
	Alpha    float64                           `json:"alpha"`
	Users    map[string]map[string]ArmSnapshot `json:"state"`
	Likes    map[string]int                    `json:"likes"`
	Dislikes map[string]int                    `json:"dislikes"`
}

const pairKeySeparator = "||"

// Snapshot captures the full store state for persistence.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	snap := Snapshot{
		Dim:      Dim,
		Alpha:    s.alpha,
		Users:    make(map[string]map[string]ArmSnapshot, len(s.users)),
		Likes:    make(map[string]int, len(s.likes)),
		Dislikes: make(map[string]int, len(s.dislikes)),
	}
	for k, v := range s.likes {
		snap.Likes[k.userID+pairKeySeparator+k.dish] = v
	}
	for k, v := range s.dislikes {
		snap.Dislikes[k.userID+pairKeySeparator+k.dish] = v
	}
	users := make(map[string]*userArms, len(s.users))
	for id, u := range s.users {
		users[id] = u
	}
	s.mu.RUnlock()

	for id, u := range users {
		u.mu.Lock()
		arms := make(map[string]ArmSnapshot, len(u.arms))
		for dish, arm := range u.arms {
			b := make([]float64, len(arm.b))
			copy(b, arm.b)
			arms[dish] = ArmSnapshot{A: arm.a.rows(), B: b}
		}
		u.mu.Unlock()
		snap.Users[id] = arms
	}
	return snap
}

// FromSnapshot rebuilds a store from its serialized form, reconstructing
// bit-for-bit identical arm matrices and counters.
func FromSnapshot(snap Snapshot) (*Store, error) {
	if snap.Dim != 0 && snap.Dim != Dim {
		return nil, fmt.Errorf("snapshot dimension %d does not match engine dimension %d", snap.Dim, Dim)
	}

	s := NewStore(snap.Alpha)
	for id, arms := range snap.Users {
		u := &userArms{arms: make(map[string]*armState, len(arms))}
		for dish, as := range arms {
			m, err := newMatrixFromRows(as.A)
			if err != nil {
				return nil, fmt.Errorf("arm %q/%q: %w", id, dish, err)
			}
			if m.n != Dim || len(as.B) != Dim {
				return nil, fmt.Errorf("arm %q/%q has dimension %dx%d", id, dish, m.n, len(as.B))
			}
			b := make([]float64, Dim)
			copy(b, as.B)
			u.arms[dish] = &armState{a: m, b: b}
		}
		s.users[id] = u
	}

	var err error
	if s.likes, err = parseCounters(snap.Likes); err != nil {
		return nil, err
	}
	if s.dislikes, err = parseCounters(snap.Dislikes); err != nil {
		return nil, err
	}
	return s, nil
}

func parseCounters(raw map[string]int) (map[pairKey]int, error) {
	out := make(map[pairKey]int, len(raw))
	for k, v := range raw {
		user, dish, ok := strings.Cut(k, pairKeySeparator)
		if !ok {
			return nil, fmt.Errorf("malformed counter key %q", k)
		}
		out[pairKey{user, dish}] = v
	}
	return out, nil
}
