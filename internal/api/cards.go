package api

import (
	"net/http"

	"github.com/hyukkyo/demon-tournament/internal/cards"
	"github.com/gin-gonic/gin"
)

// CardView is the public description of a card.
type CardView struct {
	Kind        cards.Kind     `json:"kind"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    cards.Category `json:"category"`
	Priority    int            `json:"priority"`
	EnergyCost  int            `json:"energy_cost"`
	Effect      cards.Effect   `json:"effect"`
}

// ListCards returns the full card catalog in kind order.
func ListCards(c *gin.Context) {
	all := cards.All()
	out := make([]CardView, 0, len(all))
	for _, k := range all {
		d := cards.DefinitionOf(k)
		out = append(out, CardView{
			Kind:        d.Kind,
			Name:        d.Name,
			Description: d.Description,
			Category:    d.Category(),
			Priority:    d.Priority,
			EnergyCost:  d.EnergyCost,
			Effect:      d.Effect,
		})
	}
	c.JSON(http.StatusOK, out)
}

// CharacterView is a roster entry together with its full deck.
type CharacterView struct {
	cards.Character
	Deck []cards.Kind `json:"deck"`
}

// ListCharacters returns the playable characters in roster order.
func ListCharacters(c *gin.Context) {
	roster := cards.Roster()
	out := make([]CharacterView, 0, len(roster))
	for _, ch := range roster {
		out = append(out, CharacterView{Character: ch, Deck: ch.Deck()})
	}
	c.JSON(http.StatusOK, out)
}
