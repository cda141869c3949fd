// Package narrate renders query results as display text for the viewer.
package narrate

import (
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/okian/finals/internal/domain/model"
)

// Message keys. The English text doubles as the key.
const (
	keyWins      = "%s has won the World Cup %d time(s)."
	keyNeverWon  = "%s has never won the World Cup."
	keyResult    = "In %s, %s won the World Cup. Runner-up: %s."
	keyNoResult  = "No data available for %s."
	keyMapTitle  = "Number of FIFA World Cups Won by Country"
	keyDashboard = "FIFA World Cup Finals Dashboard"
	keyHeading   = "Choropleth Map of World Cup Winners"
	keyEntityAsk = "Select a country to see number of wins:"
	keyYearAsk   = "Select a year to see final match result:"
)

// Supported lists the locales that have translated messages.
var Supported = []language.Tag{language.English, language.Spanish} //nolint:gochecknoglobals // fixed locale list

var messages = buildCatalog() //nolint:gochecknoglobals // immutable after init

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, key := range []string{keyWins, keyNeverWon, keyResult, keyNoResult, keyMapTitle, keyDashboard, keyHeading, keyEntityAsk, keyYearAsk} {
		_ = b.SetString(language.English, key, key)
	}
	_ = b.SetString(language.Spanish, keyWins, "%s ha ganado la Copa del Mundo %d vez/veces.")
	_ = b.SetString(language.Spanish, keyNeverWon, "%s nunca ha ganado la Copa del Mundo.")
	_ = b.SetString(language.Spanish, keyResult, "En %s, %s ganó la Copa del Mundo. Subcampeón: %s.")
	_ = b.SetString(language.Spanish, keyNoResult, "No hay datos disponibles para %s.")
	_ = b.SetString(language.Spanish, keyMapTitle, "Número de Copas del Mundo ganadas por país")
	_ = b.SetString(language.Spanish, keyDashboard, "Panel de finales de la Copa Mundial de la FIFA")
	_ = b.SetString(language.Spanish, keyHeading, "Mapa coroplético de los campeones del mundo")
	_ = b.SetString(language.Spanish, keyEntityAsk, "Seleccione un país para ver su número de títulos:")
	_ = b.SetString(language.Spanish, keyYearAsk, "Seleccione un año para ver el resultado de la final:")
	return b
}

// ParseLocale resolves a BCP 47 tag to the closest supported locale.
func ParseLocale(s string) (language.Tag, error) {
	tag, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return language.Und, err
	}
	matched, _, _ := language.NewMatcher(Supported).Match(tag)
	base, _ := matched.Base()
	return language.Make(base.String()), nil
}

// Narrator formats results for one locale. It is safe for concurrent use.
type Narrator struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a Narrator for tag.
func New(tag language.Tag) *Narrator {
	return &Narrator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(messages)),
	}
}

// Wins describes a wins lookup.
func (n *Narrator) Wins(r model.WinsResult) string {
	if !r.Found {
		return n.printer.Sprintf(keyNeverWon, r.Entity)
	}
	return n.printer.Sprintf(keyWins, r.Entity, r.Count)
}

// Result describes a result lookup. Years are printed without digit grouping.
func (n *Narrator) Result(r model.ResultLookup) string {
	year := strconv.Itoa(r.Year)
	if !r.Found {
		return n.printer.Sprintf(keyNoResult, year)
	}
	return n.printer.Sprintf(keyResult, year, r.Winner, r.RunnerUp)
}

// MapTitle returns the choropleth title.
func (n *Narrator) MapTitle() string { return n.printer.Sprintf(keyMapTitle) }

// DashboardTitle returns the page heading.
func (n *Narrator) DashboardTitle() string { return n.printer.Sprintf(keyDashboard) }

// MapHeading returns the heading above the map.
func (n *Narrator) MapHeading() string { return n.printer.Sprintf(keyHeading) }

// EntityPrompt returns the label of the country selector.
func (n *Narrator) EntityPrompt() string { return n.printer.Sprintf(keyEntityAsk) }

// YearPrompt returns the label of the year selector.
func (n *Narrator) YearPrompt() string { return n.printer.Sprintf(keyYearAsk) }

// SortEntities returns a copy of names in the locale's collation order.
func (n *Narrator) SortEntities(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	// Collators are not safe for concurrent use; build one per call.
	collate.New(n.tag).SortStrings(out)
	return out
}
