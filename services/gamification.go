package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"clubdev/config"
	"clubdev/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// XP recorded on the audit event for each kind of grant.
const (
	trophyEventXP    = 100
	challengeEventXP = 50
	badgeEventXP     = 25
)

// GamificationService owns rule evaluation and award persistence. Thresholds
// are injected at construction and never reloaded; Rules defaults to the
// static table and is overridable for tests.
type GamificationService struct {
	DB         *gorm.DB
	Thresholds config.Thresholds
	Rules      []Rule

	now func() time.Time
}

func NewGamificationService(db *gorm.DB, thresholds config.Thresholds) *GamificationService {
	return &GamificationService{
		DB:         db,
		Thresholds: thresholds,
		Rules:      EligibilityRules,
		now:        time.Now,
	}
}

// GrantedOutcome is one award actually persisted by an evaluation pass.
type GrantedOutcome struct {
	Kind   OutcomeKind `json:"kind"`
	Name   string      `json:"name"`
	Reward string      `json:"reward,omitempty"`
}

// Evaluate recomputes the user's metric snapshot, matches it against the
// eligibility rules and persists every satisfied outcome not already on the
// ledger. The whole pass runs inside one transaction: aggregation reads,
// award inserts and counter updates either all land or none do. The returned
// slice holds only the newly granted outcomes, in rule order; re-running with
// no new activity returns an empty slice and changes nothing.
func (s *GamificationService) Evaluate(userID string) ([]GrantedOutcome, error) {
	granted := make([]GrantedOutcome, 0)
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return dbErr("load user", err)
		}

		agg := &MetricAggregator{db: tx, now: s.now}
		snap, err := agg.Snapshot(userID)
		if err != nil {
			return err
		}

		outcomes := EvaluateRules(s.Rules, snap, s.Thresholds)

		g, err := s.apply(tx, userID, outcomes)
		if err != nil {
			return err
		}
		granted = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(granted) > 0 {
		log.Printf("🏆 Awards granted: user=%s count=%d", userID, len(granted))
	}
	return granted, nil
}

// apply persists the not-yet-granted subset of outcomes and bumps the user's
// denormalized counters by exactly the number of rows inserted, never by the
// number of satisfied rules.
func (s *GamificationService) apply(tx *gorm.DB, userID string, outcomes []Outcome) ([]GrantedOutcome, error) {
	now := s.now()
	granted := make([]GrantedOutcome, 0, len(outcomes))
	var newTrophies, newChallenges int

	for _, o := range outcomes {
		switch o.Kind {
		case OutcomeTrophy:
			inserted, err := s.grantTrophy(tx, userID, o.Name, now)
			if err != nil {
				return nil, err
			}
			if !inserted {
				continue
			}
			newTrophies++
		case OutcomeChallenge:
			inserted, err := s.grantChallenge(tx, userID, o, now)
			if err != nil {
				return nil, err
			}
			if !inserted {
				continue
			}
			newChallenges++
		default:
			continue
		}

		if err := s.recordEvent(tx, userID, o, now); err != nil {
			return nil, err
		}
		granted = append(granted, GrantedOutcome{Kind: o.Kind, Name: o.Name, Reward: o.Reward})
	}

	if newTrophies > 0 {
		if err := s.bumpCounter(tx, userID, "trophies_count", newTrophies); err != nil {
			return nil, err
		}
	}
	if newChallenges > 0 {
		if err := s.bumpCounter(tx, userID, "challenges_count", newChallenges); err != nil {
			return nil, err
		}
	}
	if len(granted) > 0 {
		if err := s.bumpCounter(tx, userID, "gamification_events_count", len(granted)); err != nil {
			return nil, err
		}
	}
	return granted, nil
}

// grantTrophy inserts the named trophy unless the user already holds it.
// The existence check runs in the caller's transaction; the unique index on
// (user_id, code) rejects the loser of a concurrent duplicate evaluation.
func (s *GamificationService) grantTrophy(tx *gorm.DB, userID, name string, now time.Time) (bool, error) {
	code := slug.Make(name)
	def := models.TrophyDefByCode(code)
	if def == nil {
		def = &models.TrophyDef{Code: code, Name: name, Level: models.TrophyBronze}
	}

	var existing int64
	if err := tx.Model(&models.Trophy{}).
		Where("user_id = ? AND code = ?", userID, code).
		Count(&existing).Error; err != nil {
		return false, dbErr("check trophy "+code, err)
	}
	if existing > 0 {
		return false, nil
	}

	trophy := models.Trophy{
		ID:          uuid.NewString(),
		UserID:      userID,
		Code:        def.Code,
		Name:        def.Name,
		Description: def.Description,
		Level:       def.Level,
		Status:      models.TrophyAchieved,
		AwardedAt:   now,
	}
	if err := tx.Create(&trophy).Error; err != nil {
		return false, dbErr("insert trophy "+code, err)
	}
	return true, nil
}

// grantChallenge records completion of the named catalog challenge for the
// current window unless one is already recorded. Rewards of the form
// "<Name> badge" additionally grant the named badge.
func (s *GamificationService) grantChallenge(tx *gorm.DB, userID string, o Outcome, now time.Time) (bool, error) {
	code := slug.Make(o.Name)

	var challenge models.Challenge
	if err := tx.First(&challenge, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrItemNotFound
		}
		return false, dbErr("load challenge "+code, err)
	}

	window := windowStartFor(challenge.Type, now)

	var existing int64
	if err := tx.Model(&models.DailyChallenge{}).
		Where("user_id = ? AND challenge_id = ? AND window_date = ?", userID, challenge.ID, window).
		Count(&existing).Error; err != nil {
		return false, dbErr("check challenge "+code, err)
	}
	if existing > 0 {
		return false, nil
	}

	completion := models.DailyChallenge{
		ID:          uuid.NewString(),
		UserID:      userID,
		ChallengeID: challenge.ID,
		WindowDate:  window,
		Completed:   true,
	}
	if err := tx.Create(&completion).Error; err != nil {
		return false, dbErr("insert challenge "+code, err)
	}

	if badgeName := strings.TrimSuffix(o.Reward, " badge"); badgeName != o.Reward {
		if _, err := s.awardBadgeTx(tx, userID, badgeName, now); err != nil {
			return false, err
		}
	}
	return true, nil
}

// awardBadgeTx grants the named catalog badge once per user, records the
// audit event and keeps badges_count and gamification_events_count in step,
// all within the caller's transaction.
func (s *GamificationService) awardBadgeTx(tx *gorm.DB, userID, name string, now time.Time) (bool, error) {
	code := slug.Make(name)

	var badge models.Badge
	if err := tx.First(&badge, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrItemNotFound
		}
		return false, dbErr("load badge "+code, err)
	}

	var existing int64
	if err := tx.Model(&models.UserBadge{}).
		Where("user_id = ? AND badge_id = ?", userID, badge.ID).
		Count(&existing).Error; err != nil {
		return false, dbErr("check badge "+code, err)
	}
	if existing > 0 {
		return false, nil
	}

	userBadge := models.UserBadge{
		ID:        uuid.NewString(),
		UserID:    userID,
		BadgeID:   badge.ID,
		AwardedAt: now,
	}
	if err := tx.Create(&userBadge).Error; err != nil {
		return false, dbErr("insert badge "+code, err)
	}
	if err := s.bumpCounter(tx, userID, "badges_count", 1); err != nil {
		return false, err
	}

	event := models.GamificationEvent{
		ID:             uuid.NewString(),
		UserID:         userID,
		EventType:      "badge:" + code,
		XPReward:       badgeEventXP,
		EventTimestamp: now,
	}
	if err := tx.Create(&event).Error; err != nil {
		return false, dbErr("insert event badge:"+code, err)
	}
	if err := s.bumpCounter(tx, userID, "gamification_events_count", 1); err != nil {
		return false, err
	}
	return true, nil
}

func (s *GamificationService) recordEvent(tx *gorm.DB, userID string, o Outcome, now time.Time) error {
	xp := trophyEventXP
	eventType := "trophy:" + slug.Make(o.Name)
	if o.Kind == OutcomeChallenge {
		xp = challengeEventXP
		eventType = "challenge:" + slug.Make(o.Name)
	}
	event := models.GamificationEvent{
		ID:             uuid.NewString(),
		UserID:         userID,
		EventType:      eventType,
		XPReward:       xp,
		EventTimestamp: now,
	}
	if err := tx.Create(&event).Error; err != nil {
		return dbErr("insert event "+eventType, err)
	}
	return nil
}

func (s *GamificationService) bumpCounter(tx *gorm.DB, userID, column string, delta int) error {
	if err := tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error; err != nil {
		return dbErr("update "+column, err)
	}
	return nil
}

// windowStartFor maps a challenge type to its current window start.
func windowStartFor(t models.ChallengeType, now time.Time) time.Time {
	switch t {
	case models.ChallengeWeekly:
		return startOfWeek(now)
	case models.ChallengeMonthly:
		return startOfMonth(now)
	default:
		return startOfDay(now)
	}
}

// AwardTrophy grants a single trophy outside a full evaluation pass (admin
// surface). Same idempotency and counter discipline as the batch applier.
func (s *GamificationService) AwardTrophy(userID, name string) (bool, error) {
	var inserted bool
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		now := s.now()
		ok, err := s.grantTrophy(tx, userID, name, now)
		if err != nil {
			return err
		}
		inserted = ok
		if !ok {
			return nil
		}
		if err := s.recordEvent(tx, userID, Outcome{Kind: OutcomeTrophy, Name: name}, now); err != nil {
			return err
		}
		if err := s.bumpCounter(tx, userID, "trophies_count", 1); err != nil {
			return err
		}
		return s.bumpCounter(tx, userID, "gamification_events_count", 1)
	})
	return inserted, err
}

// AwardBadge grants a single catalog badge (admin surface).
func (s *GamificationService) AwardBadge(userID, name string) (bool, error) {
	var inserted bool
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := s.awardBadgeTx(tx, userID, name, s.now())
		inserted = ok
		return err
	})
	return inserted, err
}

// AwardAchievement grants a catalog achievement once per user (admin
// surface).
func (s *GamificationService) AwardAchievement(userID, name string) (bool, error) {
	code := slug.Make(name)
	var inserted bool
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var achievement models.Achievement
		if err := tx.First(&achievement, "code = ?", code).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return dbErr("load achievement "+code, err)
		}

		var existing int64
		if err := tx.Model(&models.UserAchievement{}).
			Where("user_id = ? AND achievement_id = ?", userID, achievement.ID).
			Count(&existing).Error; err != nil {
			return dbErr("check achievement "+code, err)
		}
		if existing > 0 {
			return nil
		}

		grant := models.UserAchievement{
			ID:            uuid.NewString(),
			UserID:        userID,
			AchievementID: achievement.ID,
			AchievedAt:    s.now(),
		}
		if err := tx.Create(&grant).Error; err != nil {
			return dbErr("insert achievement "+code, err)
		}
		inserted = true
		return s.bumpCounter(tx, userID, "achievements_count", 1)
	})
	return inserted, err
}
