package oracle

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/ahrav/go-roundtable/internal/domain"
	"github.com/ahrav/go-roundtable/internal/ports"
)

// scorePromptText asks the oracle for one participant's interest level
// in the current state of the discussion.
const scorePromptText = `You are {{.Name}}, a student in an online class breakout room.

This is your description:
Name: {{.Name}}
Camera status: {{if .CameraOn}}ON{{else}}OFF{{end}}
Speaking style: {{.SpeakingStyle}}
Agent description: {{.Description}}

This is the current state of the other agents in the conversation:
{{.Others}}

Dialogue history:
{{.Dialogue}}

Current ranking of survival items:
{{.Ranking}}

Current turn: {{.Turn}} of {{.MaxTurns}}.
{{if .ScenarioContext}}
{{.ScenarioContext}}
{{end}}
Rate how interested you are in contributing to the discussion right now,
as a number from 0 to 100, considering your personality, the conversation
so far, and whether the current topic would engage someone like you.

IMPORTANT: You must respond with valid JSON in exactly this format:
{"interestScore": <0-100>, "reasoning": "<why you feel this engaged>"}`

// actionPromptText asks the oracle for the selected participant's next
// action, including any requested ranking changes.
const actionPromptText = `You are {{.Name}}, a student in an online class breakout room with {{.OtherCount}} other students. Your group survived a yacht fire in the Atlantic and must rank 15 salvaged items by importance for survival until rescue (1 = most important).

This is your description:
Name: {{.Name}}
Camera status: {{if .CameraOn}}ON{{else}}OFF{{end}}
Times you have toggled your camera: {{.CameraToggles}}
Speaking style: {{.SpeakingStyle}}
Agent description: {{.Description}}

This is the current state of the other agents in the conversation:
{{.Others}}

Dialogue history:
{{.Dialogue}}

Current ranking (use the exact item names shown when suggesting changes):
{{.Ranking}}

Current turn: {{.Turn}} of {{.MaxTurns}}. Taking fewer turns is better; if
slots are still empty and turns are running out, fill them.
{{if .ScenarioContext}}
{{.ScenarioContext}}
{{end}}
Decide on your next action. You may speak, toggle your camera, or pass.
Maintain your persona's characteristics throughout; if you were the last
to speak, stay coherent with that comment.

IMPORTANT: You must respond with valid JSON in exactly this format:
{"thinking": "<reasoning behind the chosen action>", "action": "speak|toggleCamera|doNothing", "message": "<message if speaking, otherwise null>", "rankingChanges": [{"item": "<exact item name>", "newRank": <1-15>}]}`

var (
	scorePromptTemplate  = template.Must(template.New("scorePrompt").Parse(scorePromptText))
	actionPromptTemplate = template.Must(template.New("actionPrompt").Parse(actionPromptText))
)

// promptData is the merged input for both prompt templates.
type promptData struct {
	Name            string
	CameraOn        bool
	CameraToggles   int
	SpeakingStyle   string
	Description     string
	Others          string
	Dialogue        string
	Ranking         string
	Turn            int
	MaxTurns        int
	OtherCount      int
	ScenarioContext string
}

func buildPromptData(tc ports.TurnContext, catalog domain.Catalog, maxTurns int) promptData {
	return promptData{
		Name:            tc.Participant.Name,
		CameraOn:        tc.Participant.CameraOn,
		CameraToggles:   tc.Participant.CameraToggles,
		SpeakingStyle:   tc.Participant.SpeakingStyle,
		Description:     tc.Participant.Description,
		Others:          formatOthers(tc.Roster, tc.Participant.ID),
		Dialogue:        formatDialogue(tc.Transcript, tc.Roster, tc.Participant.ID),
		Ranking:         formatRanking(tc.Ranking, catalog),
		Turn:            tc.Turn,
		MaxTurns:        maxTurns,
		OtherCount:      len(tc.Roster) - 1,
		ScenarioContext: scenarioContext(tc),
	}
}

// formatOthers summarizes every other participant's camera state and
// toggle count for the prompt.
func formatOthers(roster domain.Roster, selfID int) string {
	var b strings.Builder
	for _, p := range roster {
		if p.ID == selfID {
			continue
		}
		status := "OFF"
		if p.CameraOn {
			status = "ON"
		}
		fmt.Fprintf(&b, "%s:\n- Camera status: %s\n- Times this agent has toggled the camera: %d\n\n",
			p.Name, status, p.CameraToggles)
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatDialogue renders the transcript as numbered lines, marking the
// acting participant's own lines with "(You)".
func formatDialogue(transcript domain.Transcript, roster domain.Roster, selfID int) string {
	if len(transcript) == 0 {
		return "This is the start of the conversation, you are the first agent to speak."
	}
	var b strings.Builder
	for i, u := range transcript {
		name := fmt.Sprintf("Participant %d", u.ParticipantID)
		if p := roster.ByID(u.ParticipantID); p != nil {
			name = p.Name
		}
		if u.ParticipantID == selfID {
			name += " (You)"
		}
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, name, u.Message)
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatRanking renders the fifteen slots in rank order with "-" for
// empty slots, followed by the catalog items not yet placed.
func formatRanking(ranking map[int]domain.SalvageItem, catalog domain.Catalog) string {
	var b strings.Builder
	placed := make(map[string]bool, len(ranking))
	for rank := 1; rank <= domain.NumSlots; rank++ {
		if item, ok := ranking[rank]; ok {
			fmt.Fprintf(&b, "%d. %s\n", rank, item.Name)
			placed[item.Name] = true
		} else {
			fmt.Fprintf(&b, "%d. -\n", rank)
		}
	}

	var unranked []string
	for _, item := range catalog {
		if !placed[item.Name] {
			unranked = append(unranked, "- "+item.Name)
		}
	}
	if len(unranked) > 0 {
		b.WriteString("\nStill not ranked:\n")
		b.WriteString(strings.Join(unranked, "\n"))
	}
	return b.String()
}

// scenarioContext returns the extra framing for non-baseline scenarios.
func scenarioContext(tc ports.TurnContext) string {
	switch tc.Scenario {
	case domain.ScenarioLeadership:
		leaderName := ""
		if p := tc.Roster.ByID(tc.LeaderID); p != nil {
			leaderName = p.Name
		}
		if tc.Participant.ID == tc.LeaderID {
			return "You have been designated the leader of this group. Guide the discussion, invite quieter members to contribute, and push the group toward a complete ranking."
		}
		return fmt.Sprintf("%s has been designated the leader of this group. Follow their guidance while still voicing your own views.", leaderName)
	case domain.ScenarioSocial:
		return "Before diving into the task, the group values getting to know each other. Weave in social connection where it feels natural for your persona."
	case domain.ScenarioGamification:
		return "The group with the best final ranking wins a prize. Treat this as a competition and push for the strongest possible answer."
	default:
		return ""
	}
}
