// Package content loads and validates progression definition packs from
// YAML documents.
package content

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	apperrors "github.com/verdantworks/growline/internal/platform/errors"
	"github.com/verdantworks/growline/internal/progression/domain"
	"github.com/verdantworks/growline/internal/progression/engine"
)

// Schedules holds the cron expressions that drive objective resets.
type Schedules struct {
	// Daily rotates daily objectives (default: midnight UTC).
	Daily string
	// Weekly rotates weekly objectives (default: Monday midnight UTC).
	Weekly string
}

// Pack is a validated set of progression definitions.
type Pack struct {
	Name               string
	SkillNodes         []domain.SkillNode
	Synergies          []domain.Synergy
	ResearchProjects   []domain.ResearchProject
	Achievements       []domain.Achievement
	ObjectiveTemplates []domain.ObjectiveTemplate
	Campaign           domain.Campaign
	Boards             []domain.Board
	Schedules          Schedules
}

// document is the YAML shape of a content pack.
type document struct {
	Name       string `yaml:"name"`
	SkillNodes []struct {
		ID            string      `yaml:"id"`
		Name          string      `yaml:"name"`
		Branch        string      `yaml:"branch"`
		Prerequisites []string    `yaml:"prerequisites"`
		Cost          int         `yaml:"cost"`
		MaxLevel      int         `yaml:"max_level"`
		Effects       []effectDoc `yaml:"effects_per_level"`
		UnlockScript  string      `yaml:"unlock_script"`
	} `yaml:"skill_nodes"`
	Synergies []struct {
		ID      string `yaml:"id"`
		Name    string `yaml:"name"`
		Members []struct {
			Node    string `yaml:"node"`
			MinRank int    `yaml:"min_rank"`
		} `yaml:"members"`
		Bonus []effectDoc `yaml:"bonus"`
	} `yaml:"synergies"`
	ResearchProjects []struct {
		ID            string   `yaml:"id"`
		Name          string   `yaml:"name"`
		Category      string   `yaml:"category"`
		Prerequisites []string `yaml:"prerequisites"`
		Cost          int      `yaml:"cost"`
		Phases        []struct {
			Name   string `yaml:"name"`
			Target int    `yaml:"target"`
		} `yaml:"phases"`
		Grants []effectDoc `yaml:"grants"`
	} `yaml:"research_projects"`
	Achievements []struct {
		ID     string `yaml:"id"`
		Name   string `yaml:"name"`
		Stat   string `yaml:"stat"`
		Target int64  `yaml:"target"`
		Tier   string `yaml:"tier"`
		Points int    `yaml:"points"`
		Hidden bool   `yaml:"hidden"`
	} `yaml:"achievements"`
	ObjectiveTemplates []struct {
		ID               string `yaml:"id"`
		Name             string `yaml:"name"`
		Stat             string `yaml:"stat"`
		Target           int64  `yaml:"target"`
		Cadence          string `yaml:"cadence"`
		RewardExperience int64  `yaml:"reward_experience"`
	} `yaml:"objective_templates"`
	Campaign []struct {
		ID   string `yaml:"id"`
		Name string `yaml:"name"`
		Gate struct {
			Level        int      `yaml:"level"`
			Achievements []string `yaml:"achievements"`
			Research     []string `yaml:"research"`
		} `yaml:"gate"`
		Grants          []effectDoc `yaml:"grants"`
		SkillPointGrant int         `yaml:"skill_point_grant"`
	} `yaml:"campaign"`
	Boards []struct {
		ID     string `yaml:"id"`
		Name   string `yaml:"name"`
		Stat   string `yaml:"stat"`
		Order  string `yaml:"order"`
		Season string `yaml:"season"`
	} `yaml:"boards"`
	Schedules struct {
		Daily  string `yaml:"daily"`
		Weekly string `yaml:"weekly"`
	} `yaml:"schedules"`
}

type effectDoc struct {
	Stat    string  `yaml:"stat"`
	Flat    float64 `yaml:"flat"`
	Percent float64 `yaml:"percent"`
}

func effectsFromDocs(docs []effectDoc) []domain.Effect {
	if len(docs) == 0 {
		return nil
	}
	effects := make([]domain.Effect, len(docs))
	for i, doc := range docs {
		effects[i] = domain.Effect{Stat: doc.Stat, Flat: doc.Flat, Percent: doc.Percent}
	}
	return effects
}

// Parse decodes a YAML pack document and validates it.
func Parse(raw []byte) (Pack, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Pack{}, apperrors.Wrap(apperrors.CodeContentInvalid, "decode content pack", err)
	}

	pack := Pack{
		Name: doc.Name,
		Schedules: Schedules{
			Daily:  doc.Schedules.Daily,
			Weekly: doc.Schedules.Weekly,
		},
	}
	if pack.Schedules.Daily == "" {
		pack.Schedules.Daily = "0 0 * * *"
	}
	if pack.Schedules.Weekly == "" {
		pack.Schedules.Weekly = "0 0 * * 1"
	}

	for _, node := range doc.SkillNodes {
		branch, err := domain.ParseSkillBranch(node.Branch)
		if err != nil {
			return Pack{}, invalidf("skill node %q: %v", node.ID, err)
		}
		pack.SkillNodes = append(pack.SkillNodes, domain.SkillNode{
			ID:              node.ID,
			Name:            node.Name,
			Branch:          branch,
			Prerequisites:   node.Prerequisites,
			Cost:            node.Cost,
			MaxLevel:        node.MaxLevel,
			EffectsPerLevel: effectsFromDocs(node.Effects),
			UnlockScript:    node.UnlockScript,
		})
	}

	for _, synergy := range doc.Synergies {
		members := make([]domain.SynergyMember, len(synergy.Members))
		for i, member := range synergy.Members {
			members[i] = domain.SynergyMember{NodeID: member.Node, MinRank: member.MinRank}
		}
		pack.Synergies = append(pack.Synergies, domain.Synergy{
			ID:      synergy.ID,
			Name:    synergy.Name,
			Members: members,
			Bonus:   effectsFromDocs(synergy.Bonus),
		})
	}

	for _, project := range doc.ResearchProjects {
		phases := make([]domain.ResearchPhase, len(project.Phases))
		for i, phase := range project.Phases {
			phases[i] = domain.ResearchPhase{Name: phase.Name, Target: phase.Target}
		}
		pack.ResearchProjects = append(pack.ResearchProjects, domain.ResearchProject{
			ID:            project.ID,
			Name:          project.Name,
			Category:      project.Category,
			Prerequisites: project.Prerequisites,
			Cost:          project.Cost,
			Phases:        phases,
			Grants:        effectsFromDocs(project.Grants),
		})
	}

	for _, achievement := range doc.Achievements {
		tier, err := domain.ParseAchievementTier(achievement.Tier)
		if err != nil {
			return Pack{}, invalidf("achievement %q: %v", achievement.ID, err)
		}
		pack.Achievements = append(pack.Achievements, domain.Achievement{
			ID:     achievement.ID,
			Name:   achievement.Name,
			Stat:   achievement.Stat,
			Target: achievement.Target,
			Tier:   tier,
			Points: achievement.Points,
			Hidden: achievement.Hidden,
		})
	}

	for _, template := range doc.ObjectiveTemplates {
		cadence, err := domain.ParseObjectiveCadence(template.Cadence)
		if err != nil {
			return Pack{}, invalidf("objective template %q: %v", template.ID, err)
		}
		pack.ObjectiveTemplates = append(pack.ObjectiveTemplates, domain.ObjectiveTemplate{
			ID:               template.ID,
			Name:             template.Name,
			Stat:             template.Stat,
			Target:           template.Target,
			Cadence:          cadence,
			RewardExperience: template.RewardExperience,
		})
	}

	for _, phase := range doc.Campaign {
		pack.Campaign.Phases = append(pack.Campaign.Phases, domain.CampaignPhase{
			ID:   phase.ID,
			Name: phase.Name,
			Gate: domain.PhaseGate{
				RequiredLevel:        phase.Gate.Level,
				RequiredAchievements: phase.Gate.Achievements,
				RequiredResearch:     phase.Gate.Research,
			},
			Grants:          effectsFromDocs(phase.Grants),
			SkillPointGrant: phase.SkillPointGrant,
		})
	}

	for _, board := range doc.Boards {
		order, err := domain.ParseScoreOrder(board.Order)
		if err != nil {
			return Pack{}, invalidf("board %q: %v", board.ID, err)
		}
		pack.Boards = append(pack.Boards, domain.Board{
			ID:     board.ID,
			Name:   board.Name,
			Stat:   board.Stat,
			Order:  order,
			Season: board.Season,
		})
	}

	if err := pack.Validate(); err != nil {
		return Pack{}, err
	}
	return pack, nil
}

// Validate checks cross-definition invariants: unique IDs, resolvable
// references, an acyclic skill prerequisite graph, and parseable reset
// schedules.
func (p Pack) Validate() error {
	nodeIDs := map[string]bool{}
	prereqs := map[string][]string{}
	for _, node := range p.SkillNodes {
		if node.ID == "" {
			return invalidf("skill node with empty id")
		}
		if nodeIDs[node.ID] {
			return invalidf("duplicate skill node id %q", node.ID)
		}
		nodeIDs[node.ID] = true
		prereqs[node.ID] = node.Prerequisites
		if err := node.Validate(); err != nil {
			return invalidf("skill node %q: %v", node.ID, err)
		}
	}
	for _, node := range p.SkillNodes {
		for _, prereq := range node.Prerequisites {
			if !nodeIDs[prereq] {
				return invalidf("skill node %q requires unknown node %q", node.ID, prereq)
			}
		}
	}
	if err := engine.NewPrereqGraph(prereqs).CheckAcyclic(); err != nil {
		return invalidf("skill prerequisites: %v", err)
	}

	synergyIDs := map[string]bool{}
	for _, synergy := range p.Synergies {
		if synergyIDs[synergy.ID] {
			return invalidf("duplicate synergy id %q", synergy.ID)
		}
		synergyIDs[synergy.ID] = true
		if err := synergy.Validate(); err != nil {
			return invalidf("synergy %q: %v", synergy.ID, err)
		}
		for _, member := range synergy.Members {
			if !nodeIDs[member.NodeID] {
				return invalidf("synergy %q references unknown node %q", synergy.ID, member.NodeID)
			}
		}
	}

	projectIDs := map[string]bool{}
	researchPrereqs := map[string][]string{}
	for _, project := range p.ResearchProjects {
		if projectIDs[project.ID] {
			return invalidf("duplicate research project id %q", project.ID)
		}
		projectIDs[project.ID] = true
		researchPrereqs[project.ID] = project.Prerequisites
		if err := project.Validate(); err != nil {
			return invalidf("research project %q: %v", project.ID, err)
		}
	}
	for _, project := range p.ResearchProjects {
		for _, prereq := range project.Prerequisites {
			if !projectIDs[prereq] {
				return invalidf("research project %q requires unknown project %q", project.ID, prereq)
			}
		}
	}
	if err := engine.NewPrereqGraph(researchPrereqs).CheckAcyclic(); err != nil {
		return invalidf("research prerequisites: %v", err)
	}

	achievementIDs := map[string]bool{}
	for _, achievement := range p.Achievements {
		if achievementIDs[achievement.ID] {
			return invalidf("duplicate achievement id %q", achievement.ID)
		}
		achievementIDs[achievement.ID] = true
		if err := achievement.Validate(); err != nil {
			return invalidf("achievement %q: %v", achievement.ID, err)
		}
	}

	templateIDs := map[string]bool{}
	for _, template := range p.ObjectiveTemplates {
		if templateIDs[template.ID] {
			return invalidf("duplicate objective template id %q", template.ID)
		}
		templateIDs[template.ID] = true
		if err := template.Validate(); err != nil {
			return invalidf("objective template %q: %v", template.ID, err)
		}
	}

	phaseIDs := map[string]bool{}
	for _, phase := range p.Campaign.Phases {
		if phaseIDs[phase.ID] {
			return invalidf("duplicate campaign phase id %q", phase.ID)
		}
		phaseIDs[phase.ID] = true
		for _, required := range phase.Gate.RequiredAchievements {
			if !achievementIDs[required] {
				return invalidf("campaign phase %q gates on unknown achievement %q", phase.ID, required)
			}
		}
		for _, required := range phase.Gate.RequiredResearch {
			if !projectIDs[required] {
				return invalidf("campaign phase %q gates on unknown research %q", phase.ID, required)
			}
		}
	}

	boardIDs := map[string]bool{}
	for _, board := range p.Boards {
		if boardIDs[board.ID] {
			return invalidf("duplicate board id %q", board.ID)
		}
		boardIDs[board.ID] = true
		if err := board.Validate(); err != nil {
			return invalidf("board %q: %v", board.ID, err)
		}
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(p.Schedules.Daily); err != nil {
		return invalidf("daily schedule %q: %v", p.Schedules.Daily, err)
	}
	if _, err := parser.Parse(p.Schedules.Weekly); err != nil {
		return invalidf("weekly schedule %q: %v", p.Schedules.Weekly, err)
	}

	return nil
}

func invalidf(format string, args ...any) error {
	return apperrors.New(apperrors.CodeContentInvalid, fmt.Sprintf(format, args...))
}
