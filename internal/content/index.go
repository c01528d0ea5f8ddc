package content

import (
	"github.com/verdantworks/growline/internal/progression/domain"
	"github.com/verdantworks/growline/internal/progression/engine"
)

// Index provides constant-time lookups over a validated pack. Build it once
// per loaded pack and share it across services.
type Index struct {
	pack Pack

	skillNodes         map[string]domain.SkillNode
	synergies          map[string]domain.Synergy
	researchProjects   map[string]domain.ResearchProject
	achievements       map[string]domain.Achievement
	achievementsByStat map[string][]domain.Achievement
	objectiveTemplates map[string]domain.ObjectiveTemplate
	boards             map[string]domain.Board
	skillPrereqs       *engine.PrereqGraph
	researchPrereqs    *engine.PrereqGraph
}

// NewIndex builds lookup tables for a pack. The pack is assumed validated.
func NewIndex(pack Pack) *Index {
	idx := &Index{
		pack:               pack,
		skillNodes:         make(map[string]domain.SkillNode, len(pack.SkillNodes)),
		synergies:          make(map[string]domain.Synergy, len(pack.Synergies)),
		researchProjects:   make(map[string]domain.ResearchProject, len(pack.ResearchProjects)),
		achievements:       make(map[string]domain.Achievement, len(pack.Achievements)),
		achievementsByStat: make(map[string][]domain.Achievement),
		objectiveTemplates: make(map[string]domain.ObjectiveTemplate, len(pack.ObjectiveTemplates)),
		boards:             make(map[string]domain.Board, len(pack.Boards)),
	}

	skillPrereqs := make(map[string][]string, len(pack.SkillNodes))
	for _, node := range pack.SkillNodes {
		idx.skillNodes[node.ID] = node
		skillPrereqs[node.ID] = node.Prerequisites
	}
	idx.skillPrereqs = engine.NewPrereqGraph(skillPrereqs)

	for _, synergy := range pack.Synergies {
		idx.synergies[synergy.ID] = synergy
	}

	researchPrereqs := make(map[string][]string, len(pack.ResearchProjects))
	for _, project := range pack.ResearchProjects {
		idx.researchProjects[project.ID] = project
		researchPrereqs[project.ID] = project.Prerequisites
	}
	idx.researchPrereqs = engine.NewPrereqGraph(researchPrereqs)

	for _, achievement := range pack.Achievements {
		idx.achievements[achievement.ID] = achievement
		idx.achievementsByStat[achievement.Stat] = append(idx.achievementsByStat[achievement.Stat], achievement)
	}

	for _, template := range pack.ObjectiveTemplates {
		idx.objectiveTemplates[template.ID] = template
	}

	for _, board := range pack.Boards {
		idx.boards[board.ID] = board
	}

	return idx
}

// Pack returns the underlying pack.
func (i *Index) Pack() Pack { return i.pack }

// SkillNode looks up a skill node definition.
func (i *Index) SkillNode(id string) (domain.SkillNode, bool) {
	node, ok := i.skillNodes[id]
	return node, ok
}

// Synergies returns all synergy definitions.
func (i *Index) Synergies() []domain.Synergy { return i.pack.Synergies }

// Synergy looks up a synergy definition.
func (i *Index) Synergy(id string) (domain.Synergy, bool) {
	synergy, ok := i.synergies[id]
	return synergy, ok
}

// ResearchProject looks up a research project definition.
func (i *Index) ResearchProject(id string) (domain.ResearchProject, bool) {
	project, ok := i.researchProjects[id]
	return project, ok
}

// Achievement looks up an achievement definition.
func (i *Index) Achievement(id string) (domain.Achievement, bool) {
	achievement, ok := i.achievements[id]
	return achievement, ok
}

// AchievementsForStat returns the achievements driven by a stat.
func (i *Index) AchievementsForStat(stat string) []domain.Achievement {
	return i.achievementsByStat[stat]
}

// ObjectiveTemplate looks up an objective template definition.
func (i *Index) ObjectiveTemplate(id string) (domain.ObjectiveTemplate, bool) {
	template, ok := i.objectiveTemplates[id]
	return template, ok
}

// ObjectiveTemplates returns all objective template definitions.
func (i *Index) ObjectiveTemplates() []domain.ObjectiveTemplate {
	return i.pack.ObjectiveTemplates
}

// Campaign returns the campaign phase list.
func (i *Index) Campaign() domain.Campaign { return i.pack.Campaign }

// Board looks up a leaderboard board definition.
func (i *Index) Board(id string) (domain.Board, bool) {
	board, ok := i.boards[id]
	return board, ok
}

// Boards returns all board definitions.
func (i *Index) Boards() []domain.Board { return i.pack.Boards }

// SkillPrereqs returns the skill prerequisite graph.
func (i *Index) SkillPrereqs() *engine.PrereqGraph { return i.skillPrereqs }

// ResearchPrereqs returns the research prerequisite graph.
func (i *Index) ResearchPrereqs() *engine.PrereqGraph { return i.researchPrereqs }
