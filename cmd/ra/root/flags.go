package root

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/storage"
)

// missionFlags covers every patchable mission field. Only flags the user
// actually set end up in the patch, so unset fields fall through to the
// current values.
type missionFlags struct {
	name          string
	description   string
	baseXP        int
	target        float64
	unit          string
	days          []int
	assign        []string
	memberTargets []string
	sortKey       int
}

func (f *missionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Display name")
	cmd.Flags().StringVar(&f.description, "desc", "", "Description")
	cmd.Flags().IntVar(&f.baseXP, "xp", 0, "Base star value")
	cmd.Flags().Float64Var(&f.target, "target", 0, "Default numeric target (partial missions)")
	cmd.Flags().StringVar(&f.unit, "unit", "", "Target unit, e.g. pages")
	cmd.Flags().IntSliceVar(&f.days, "days", nil, "Active cycle days, e.g. 21,23,25 (empty = every day)")
	cmd.Flags().StringSliceVar(&f.assign, "assign", nil, "Restrict to crew member ids (empty list = nobody)")
	cmd.Flags().StringSliceVar(&f.memberTargets, "member-target", nil, "Per-member target, memberID=value[:unit]")
	cmd.Flags().IntVar(&f.sortKey, "sort", 0, "Display ordering key")
}

func (f *missionFlags) patch(cmd *cobra.Command) (storage.MissionPatch, error) {
	var p storage.MissionPatch
	flags := cmd.Flags()

	if flags.Changed("name") {
		p.Name = &f.name
	}
	if flags.Changed("desc") {
		p.Description = &f.description
	}
	if flags.Changed("xp") {
		p.BaseXP = &f.baseXP
	}
	if flags.Changed("target") {
		p.DefaultTarget = &f.target
	}
	if flags.Changed("unit") {
		p.Unit = &f.unit
	}
	if flags.Changed("days") {
		days := f.days
		p.ActiveDays = &days
	}
	if flags.Changed("assign") {
		assign := f.assign
		p.AssignedTo = &assign
	}
	if flags.Changed("sort") {
		p.SortKey = &f.sortKey
	}
	if flags.Changed("member-target") {
		targets, err := parseMemberTargets(f.memberTargets)
		if err != nil {
			return storage.MissionPatch{}, err
		}
		p.MemberTargets = targets
	}
	return p, nil
}

func parseMemberTargets(pairs []string) (map[string]storage.MemberTarget, error) {
	out := make(map[string]storage.MemberTarget, len(pairs))
	for _, pair := range pairs {
		memberID, spec, ok := strings.Cut(pair, "=")
		if !ok || memberID == "" {
			return nil, fmt.Errorf("invalid member target %q (want memberID=value[:unit])", pair)
		}
		valueStr, unit, _ := strings.Cut(spec, ":")
		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil || value <= 0 {
			return nil, fmt.Errorf("invalid member target value %q (want a positive number)", valueStr)
		}
		out[memberID] = storage.MemberTarget{Target: value, Unit: unit}
	}
	return out, nil
}

// parseValues turns --done and --progress flags into a recorded value set.
func parseValues(done []string, progress []string) (map[string]storage.RecordedValue, error) {
	values := make(map[string]storage.RecordedValue)
	yes := true
	for _, id := range done {
		values[id] = storage.RecordedValue{Done: &yes}
	}
	for _, pair := range progress {
		missionID, amount, ok := strings.Cut(pair, "=")
		if !ok || missionID == "" {
			return nil, fmt.Errorf("invalid progress %q (want missionID=amount)", pair)
		}
		achieved, err := strconv.ParseFloat(amount, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid progress amount %q", amount)
		}
		values[missionID] = storage.RecordedValue{Achieved: &achieved}
	}
	return values, nil
}
