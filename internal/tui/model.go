package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/engine"
	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/storage"
	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service
	day int

	width  int
	height int

	member   *storage.CrewMember
	missions []storage.Mission
	values   map[string]storage.RecordedValue

	selected int
	lastLog  string
	loading  bool
	err      error
}

type loadedMsg struct {
	member   *storage.CrewMember
	missions []storage.Mission
	values   map[string]storage.RecordedValue
	err      error
}

type savedMsg struct {
	res *engine.SaveDayResult
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service, day int) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		day:     day,
		values:  map[string]storage.RecordedValue{},
		loading: true,
		lastLog: "Loading…",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		settings, err := m.svc.Settings(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		if settings.ActiveMemberID == "" {
			return loadedMsg{err: fmt.Errorf("no active crew member; run `ra crew add` first")}
		}
		member, err := m.svc.Member(m.ctx, settings.ActiveMemberID)
		if err != nil {
			return loadedMsg{err: err}
		}

		all, err := m.svc.Missions(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		enabled := engine.EnabledSet(settings)
		var missions []storage.Mission
		for _, mission := range all {
			if engine.Applicable(mission, enabled, member.ID, m.day) {
				missions = append(missions, mission)
			}
		}

		log, err := m.svc.Log(m.ctx, member.ID)
		if err != nil {
			return loadedMsg{err: err}
		}
		values := map[string]storage.RecordedValue{}
		for id, r := range log.Days[m.day-1].Results {
			values[id] = r.Value
		}

		return loadedMsg{member: member, missions: missions, values: values}
	}
}

func (m boardModel) saveCmd() tea.Cmd {
	values := m.values
	return func() tea.Msg {
		res, err := m.svc.SaveDay(m.ctx, m.member.ID, m.day, values)
		return savedMsg{res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.member = msg.member
		m.missions = msg.missions
		m.values = msg.values
		if m.selected >= len(m.missions) {
			m.selected = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case savedMsg:
		if msg.err != nil {
			m.lastLog = "Save failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Day %d saved: %s %d stars", msg.res.Day, ui.IconStar, msg.res.XPEarned)
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.missions)-1 {
				m.selected++
			}
			return m, nil
		case " ", "enter":
			return m.toggleSelected(), nil
		case "right", "l", "+":
			return m.bumpSelected(1), nil
		case "left", "h", "-":
			return m.bumpSelected(-1), nil
		case "s":
			if m.member == nil {
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Saving day %d…", m.day)
			return m, m.saveCmd()
		}
	}
	return m, nil
}

func (m boardModel) toggleSelected() boardModel {
	if m.selected < 0 || m.selected >= len(m.missions) {
		return m
	}
	mission := m.missions[m.selected]
	if engine.MissionType(mission.Type) != engine.MissionBoolean {
		return m.bumpSelected(1)
	}
	v := m.values[mission.ID]
	done := v.Done == nil || !*v.Done
	v.Done = &done
	m.values[mission.ID] = v
	return m
}

func (m boardModel) bumpSelected(delta float64) boardModel {
	if m.selected < 0 || m.selected >= len(m.missions) {
		return m
	}
	mission := m.missions[m.selected]
	if engine.MissionType(mission.Type) != engine.MissionPartial {
		return m
	}
	target, _ := engine.EffectiveTarget(mission, m.member.ID)

	v := m.values[mission.ID]
	achieved := 0.0
	if v.Achieved != nil {
		achieved = *v.Achieved
	}
	achieved += delta
	if achieved < 0 {
		achieved = 0
	}
	v.Achieved = &achieved
	if target > 0 {
		v.Target = &target
	}
	m.values[mission.ID] = v
	return m
}

func (m boardModel) View() string {
	if m.loading {
		return ui.Muted.Render("Loading mission board…")
	}
	if m.err != nil {
		return ui.Bad.Render(ui.IconError+" "+m.err.Error()) + "\n"
	}

	var b strings.Builder
	header := fmt.Sprintf("%s Day %d/%d · %s %s", ui.IconMoon, m.day, storage.CycleDays, m.member.Callsign, ui.TierBadge(m.member.Tier))
	b.WriteString(ui.Title.Render(header))
	b.WriteString("\n\n")

	if len(m.missions) == 0 {
		b.WriteString(ui.Muted.Render("No missions scheduled for this day."))
		b.WriteString("\n")
	}

	tier := engine.ParseTier(m.member.Tier)
	for i, mission := range m.missions {
		line := m.missionLine(mission, tier)
		if i == m.selected {
			line = ui.SelectedRow.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(ui.Muted.Render("space toggle · ←/→ adjust · s save day · r refresh · q quit"))
	b.WriteString("\n")
	b.WriteString(ui.Muted.Render(m.lastLog))
	b.WriteString("\n")
	return ui.Panel.Render(b.String())
}

func (m boardModel) missionLine(mission storage.Mission, tier engine.Tier) string {
	v := m.values[mission.ID]
	xp := engine.Score(mission, v, tier)
	max := engine.MaxScore(mission, tier)

	switch engine.MissionType(mission.Type) {
	case engine.MissionPartial:
		achieved := 0.0
		if v.Achieved != nil {
			achieved = *v.Achieved
		}
		target, unit := engine.EffectiveTarget(mission, m.member.ID)
		return fmt.Sprintf("%s %-24s %4.0f/%.0f %-8s %s", ui.IconFlag, mission.Name, achieved, target, unit,
			ui.Gold.Render(fmt.Sprintf("%d/%d%s", xp, max, ui.IconStar)))
	default:
		icon := ui.IconMissed
		if v.Done != nil && *v.Done {
			icon = ui.IconDone
		}
		return fmt.Sprintf("%s %-24s %13s %s", icon, mission.Name, "",
			ui.Gold.Render(fmt.Sprintf("%d/%d%s", xp, max, ui.IconStar)))
	}
}
