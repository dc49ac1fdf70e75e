package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Leyinc1/manuelbest/internal/domain/models"
	"github.com/Leyinc1/manuelbest/internal/lib/logger/sl"
	"github.com/Leyinc1/manuelbest/internal/lib/weekly"
)

// Layouts accepted for event timestamps. Layouts without an offset are read
// in the schedule location.
var scheduleLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

type ScheduleService struct {
	log   *slog.Logger
	items ScheduleProvider
	loc   *time.Location
	now   func() time.Time
}

type ScheduleProvider interface {
	ItemsByUser(ctx context.Context, userID string) ([]models.ScheduleItem, error)
	ReplaceItems(ctx context.Context, userID string, items []models.ScheduleItem) error
}

func NewScheduleService(
	log *slog.Logger,
	items ScheduleProvider,
	loc *time.Location) *ScheduleService {
	if loc == nil {
		loc = time.UTC
	}
	return &ScheduleService{
		log:   log,
		items: items,
		loc:   loc,
		now:   time.Now,
	}
}

// LoadSchedule materializes the stored weekly slots into the current week.
func (s *ScheduleService) LoadSchedule(ctx context.Context, userID string) ([]models.ScheduleEvent, error) {
	const op = "service.schedule.LoadSchedule"

	items, err := s.items.ItemsByUser(ctx, userID)
	if err != nil {
		s.log.Error("failed to load schedule", slog.String("op", op), slog.String("user_id", userID), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now().In(s.loc)
	events := make([]models.ScheduleEvent, 0, len(items))
	for _, it := range items {
		iv := weekly.Decode(weekly.Slot{Day: it.Day, StartHour: it.StartHour, Duration: it.Duration}, now)
		events = append(events, models.ScheduleEvent{
			Title: it.CourseName,
			Start: iv.Start,
			End:   iv.End,
		})
	}

	return events, nil
}

// SaveSchedule replaces the user's schedule with the well-formed subset of
// events and returns how many were kept.
func (s *ScheduleService) SaveSchedule(ctx context.Context, userID string, events []models.RawScheduleEvent) (int, error) {
	const op = "service.schedule.SaveSchedule"

	log := s.log.With(
		slog.String("op", op),
		slog.String("user_id", userID),
	)

	log.Info("saving schedule", slog.Int("submitted", len(events)))

	items := make([]models.ScheduleItem, 0, len(events))
	for i, ev := range events {
		item, err := s.encode(ev)
		if err != nil {
			log.Warn("skipping schedule event", slog.Int("index", i), sl.Err(err))
			continue
		}
		item.UserID = userID
		items = append(items, item)
	}

	if err := s.items.ReplaceItems(ctx, userID, items); err != nil {
		log.Error("failed to replace schedule", sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("schedule saved", slog.Int("saved", len(items)))

	return len(items), nil
}

func (s *ScheduleService) encode(ev models.RawScheduleEvent) (models.ScheduleItem, error) {
	title := strings.TrimSpace(ev.Title)
	if title == "" {
		return models.ScheduleItem{}, errors.New("empty title")
	}

	start, err := s.parseTime(ev.Start)
	if err != nil {
		return models.ScheduleItem{}, fmt.Errorf("start: %w", err)
	}
	end, err := s.parseTime(ev.End)
	if err != nil {
		return models.ScheduleItem{}, fmt.Errorf("end: %w", err)
	}

	slot, err := weekly.Encode(start, end, s.loc)
	if err != nil {
		return models.ScheduleItem{}, err
	}

	return models.ScheduleItem{
		CourseName: title,
		Day:        slot.Day,
		StartHour:  slot.StartHour,
		Duration:   slot.Duration,
	}, nil
}

func (s *ScheduleService) parseTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	for _, layout := range scheduleLayouts {
		if t, err := time.ParseInLocation(layout, v, s.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable time %q", v)
}
