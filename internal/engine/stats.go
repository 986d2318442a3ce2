package engine

import (
	"context"

	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/storage"
)

// TotalStars sums a log's daily totals. Missing or corrupted entries count
// as zero, never negative.
func TotalStars(log storage.DayLog) int {
	total := 0
	for _, d := range log.Days {
		if d.XPEarned > 0 {
			total += d.XPEarned
		}
	}
	return total
}

// PerfectStreak counts consecutive fully-scored days backward from the most
// recently saved day. A day breaks the streak when it was not completed or
// earned no stars. A log that was never saved scores 0.
func PerfectStreak(log storage.DayLog) int {
	last := 0
	for day := len(log.Days); day >= 1; day-- {
		if log.Days[day-1].SavedAt != nil {
			last = day
			break
		}
	}
	if last == 0 {
		return 0
	}

	streak := 0
	for day := last; day >= 1; day-- {
		e := log.Days[day-1]
		if !e.Completed || e.XPEarned <= 0 {
			break
		}
		streak++
	}
	return streak
}

func (s *Service) TotalStars(ctx context.Context, memberID string) (int, error) {
	log, err := s.Log(ctx, memberID)
	if err != nil {
		return 0, err
	}
	return TotalStars(log), nil
}

func (s *Service) PerfectStreak(ctx context.Context, memberID string) (int, error) {
	log, err := s.Log(ctx, memberID)
	if err != nil {
		return 0, err
	}
	return PerfectStreak(log), nil
}

type MemberStats struct {
	Member     storage.CrewMember
	TotalStars int
	Streak     int
}

type TeamStats struct {
	Members    []MemberStats
	TotalStars int
	// MaxStars is the ceiling under current rules: the sum over every member,
	// day and applicable mission of its full-completion score. Narrowing the
	// enabled allow-list immediately lowers the ceiling, so progress against
	// it can exceed 100% after a configuration change.
	MaxStars int
}

func (s *Service) TeamTotalStars(ctx context.Context) (int, error) {
	stats, err := s.TeamStats(ctx)
	if err != nil {
		return 0, err
	}
	return stats.TotalStars, nil
}

func (s *Service) TeamMaxStars(ctx context.Context) (int, error) {
	stats, err := s.TeamStats(ctx)
	if err != nil {
		return 0, err
	}
	return stats.MaxStars, nil
}

// TeamStats derives the team-wide aggregates in one pass.
func (s *Service) TeamStats(ctx context.Context) (*TeamStats, error) {
	crew, err := s.store.Crew(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.store.Settings(ctx)
	if err != nil {
		return nil, err
	}
	customs, err := s.store.CustomMissions(ctx)
	if err != nil {
		return nil, err
	}
	missions := EffectiveMissions(settings, customs)
	enabled := EnabledSet(settings)

	out := &TeamStats{}
	for _, member := range crew {
		log, err := s.store.Log(ctx, member.ID)
		if err != nil {
			return nil, err
		}
		ms := MemberStats{
			Member:     member,
			TotalStars: TotalStars(log),
			Streak:     PerfectStreak(log),
		}
		out.Members = append(out.Members, ms)
		out.TotalStars += ms.TotalStars

		tier := ParseTier(member.Tier)
		for day := 1; day <= storage.CycleDays; day++ {
			for _, m := range missions {
				if Applicable(m, enabled, member.ID, day) {
					out.MaxStars += MaxScore(m, tier)
				}
			}
		}
	}
	return out, nil
}
