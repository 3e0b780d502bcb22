package progress

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
)

// Store loads, saves and mutates sessions.
type Store struct {
	backend Backend
	rules   Rules
	logger  *log.Logger
}

// NewStore creates a store over backend. A nil logger uses log.Default().
func NewStore(backend Backend, rules Rules, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{backend: backend, rules: rules, logger: logger}
}

// Rules returns the rules the store applies.
func (s *Store) Rules() Rules {
	return s.rules
}

// Load reads the persisted session. Missing values take their defaults;
// values that are not integers or are out of range are replaced by the
// default and logged. On a backend error the defaults for the unread
// values are kept and the error is returned alongside the session.
func (s *Store) Load() (Session, error) {
	sess := NewSession(s.rules)

	var errs []error
	read := func(key string, dst *int, minimum int) {
		raw, ok, err := s.backend.Get(key)
		if err != nil {
			errs = append(errs, fmt.Errorf("progress: cannot read %s: %w", key, err))
			return
		}
		if !ok {
			return
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < minimum {
			s.logger.Warn("invalid persisted value, using default", "key", key, "value", raw, "default", *dst)
			return
		}
		*dst = n
	}
	read(KeyShots, &sess.ShotsRemaining, 0)
	read(KeyLevel, &sess.Level, 1)
	read(KeyMaxLevel, &sess.MaxLevel, 1)

	if sess.MaxLevel < sess.Level {
		s.logger.Warn("best level below current level, raising it", "level", sess.Level, "maxLevel", sess.MaxLevel)
		sess.MaxLevel = sess.Level
	}
	if sess.Depleted() {
		s.logger.Info("persisted session had no shots left, starting over")
		s.ResetSession(&sess)
	}
	return sess, errors.Join(errs...)
}

// Save writes the three persisted values.
func (s *Store) Save(sess Session) error {
	values := []struct {
		key string
		n   int
	}{
		{KeyLevel, sess.Level},
		{KeyMaxLevel, sess.MaxLevel},
		{KeyShots, sess.ShotsRemaining},
	}
	for _, v := range values {
		if err := s.backend.Set(v.key, strconv.Itoa(v.n)); err != nil {
			return fmt.Errorf("progress: cannot save %s: %w", v.key, err)
		}
	}
	return nil
}

// Clear deletes the persisted values so the next Load starts fresh.
func (s *Store) Clear() error {
	for _, key := range []string{KeyLevel, KeyMaxLevel, KeyShots} {
		if err := s.backend.Delete(key); err != nil {
			return fmt.Errorf("progress: cannot delete %s: %w", key, err)
		}
	}
	return nil
}

// RecordGoal credits a goal and advances the level. A goal on the first
// launch of a ball earns the first-shot bonus. Returns the reward.
func (s *Store) RecordGoal(sess *Session) int {
	reward := s.rules.GoalReward
	if sess.ShotAttemptsThisBall == 1 {
		reward = s.rules.FirstShotBonus
	}
	sess.ShotsRemaining += reward
	sess.Level++
	sess.MaxLevel = max(sess.MaxLevel, sess.Level)
	return reward
}

// RecordMiss takes a shot away unless a goal is being celebrated.
// Reports whether the count changed.
func (s *Store) RecordMiss(sess *Session) bool {
	if sess.IsCelebrating {
		return false
	}
	sess.ShotsRemaining--
	return true
}

// ResetSession starts the progression over. The best level is kept.
func (s *Store) ResetSession(sess *Session) {
	sess.Level = 1
	sess.ShotsRemaining = s.rules.InitialShots
	sess.MaxLevel = max(sess.MaxLevel, sess.Level)
}
