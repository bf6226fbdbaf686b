package agent

import (
	"fmt"
	"strings"
)

const explorePrompt = "Your knowledge graph has been updated with this information. Would you like to explore any connections or add more details?"

// BuildResponse composes the acknowledgment shown to the user
func BuildResponse(message string, entities []EntityRef, relationships []RelationshipRef) string {
	if len(entities) == 0 && len(relationships) == 0 {
		return fmt.Sprintf("I've noted your reflection: '%s'. I didn't identify any specific entities or relationships to add to the knowledge graph, but your thought has been recorded.", message)
	}

	parts := make([]string, 0, 3)

	if len(entities) > 0 {
		names := make([]string, 0, len(entities))
		for _, e := range entities {
			names = append(names, e.Name)
		}
		parts = append(parts, "I've identified and added these entities to your knowledge graph: "+strings.Join(names, ", "))
	}

	if len(relationships) > 0 {
		descriptions := make([]string, 0, len(relationships))
		for _, r := range relationships {
			descriptions = append(descriptions, fmt.Sprintf("%s -> %s -> %s", r.StartEntity, r.Type, r.EndEntity))
		}
		parts = append(parts, "I've also created these relationships: "+strings.Join(descriptions, ", "))
	}

	parts = append(parts, explorePrompt)
	return strings.Join(parts, " ")
}
