package console

import (
	"fmt"
	"strings"
)

// Lang is a console language code
type Lang string

const (
	LangEnglish Lang = "en"
	LangCzech   Lang = "cs"
)

// Langs lists supported languages in cycle order
var Langs = []Lang{LangEnglish, LangCzech}

// ParseLang accepts a language code, case-insensitive
func ParseLang(s string) (Lang, error) {
	l := Lang(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Langs {
		if l == known {
			return l, nil
		}
	}
	return "", fmt.Errorf("unsupported language %q", s)
}

// Next returns the language after l in cycle order
func (l Lang) Next() Lang {
	for i, known := range Langs {
		if known == l {
			return Langs[(i+1)%len(Langs)]
		}
	}
	return LangEnglish
}

// Key identifies a console message
type Key string

const (
	KeyWelcome         Key = "welcome"
	KeyPulse           Key = "pulse"
	KeyPulseDerailed   Key = "pulse_derailed"
	KeyPulseCooldown   Key = "pulse_cooldown"
	KeyPurchase        Key = "purchase"
	KeyDeniedScrap     Key = "denied_scrap"
	KeyDeniedWagons    Key = "denied_wagons"
	KeyDeniedLevel     Key = "denied_level"
	KeyDeniedSell      Key = "denied_sell"
	KeyDeniedUnknown   Key = "denied_unknown"
	KeySold            Key = "sold"
	KeyHubBuilt        Key = "hub_built"
	KeyDerailed        Key = "derailed"
	KeyDispatched      Key = "dispatched"
	KeyRefuel          Key = "refuel"
	KeyRebootComplete  Key = "reboot_complete"
	KeyRebootNotNeeded Key = "reboot_not_needed"
	KeyRebootInFlight  Key = "reboot_in_flight"
	KeyDocked          Key = "docked"
	KeyTerminalArrival Key = "terminal_arrival"
	KeyTerminalSettled Key = "terminal_settled"
	KeyGodMode         Key = "god_mode"
	KeySkinApplied     Key = "skin_applied"
	KeySkinFailed      Key = "skin_failed"
	KeyLanguage        Key = "language"
	KeySpeed           Key = "speed"
	KeyLivery          Key = "livery"
	KeyGeometry        Key = "geometry"
	KeyPaused          Key = "paused"
	KeyRebootHint      Key = "reboot_hint"
)

var messages = map[Lang]map[Key]string{
	LangEnglish: {
		KeyWelcome:         "System online",
		KeyPulse:           "Pulse: +%.1f scrap",
		KeyPulseDerailed:   "Pulse denied: train derailed",
		KeyPulseCooldown:   "Pulse cooling down",
		KeyPurchase:        "Bought %s for %.0f scrap",
		KeyDeniedScrap:     "Not enough scrap for %s",
		KeyDeniedWagons:    "Wagon limit reached",
		KeyDeniedLevel:     "%s is at max level",
		KeyDeniedSell:      "That car cannot be sold",
		KeyDeniedUnknown:   "Unknown item",
		KeySold:            "Sold %s for %.0f scrap",
		KeyHubBuilt:        "New %s hub online",
		KeyDerailed:        "Hardware storm! Train derailed",
		KeyDispatched:      "Drone dispatched: %s",
		KeyRefuel:          "Refuel +%.0f energy",
		KeyRebootComplete:  "Reboot complete, train back on track",
		KeyRebootNotNeeded: "No reboot needed",
		KeyRebootInFlight:  "Reboot already in progress",
		KeyDocked:          "Drone docked",
		KeyTerminalArrival: "Arrived at terminal",
		KeyTerminalSettled: "Terminal: +%.0f scrap, %d boarded",
		KeyGodMode:         "God mode: +%.0f scrap",
		KeySkinApplied:     "Skin applied: %s",
		KeySkinFailed:      "Skin generation failed, keeping current look",
		KeyLanguage:        "Language: English",
		KeySpeed:           "Speed set to %.0f",
		KeyLivery:          "Livery changed",
		KeyGeometry:        "Track margin %.0f, radius %.0f",
		KeyPaused:          "PAUSED",
		KeyRebootHint:      "DERAILED - press r to send a reboot drone",
	},
	LangCzech: {
		KeyWelcome:         "Systém online",
		KeyPulse:           "Puls: +%.1f šrotu",
		KeyPulseDerailed:   "Puls zamítnut: vlak vykolejil",
		KeyPulseCooldown:   "Puls se dobíjí",
		KeyPurchase:        "Koupeno: %s za %.0f šrotu",
		KeyDeniedScrap:     "Nedostatek šrotu na %s",
		KeyDeniedWagons:    "Dosažen limit vagonů",
		KeyDeniedLevel:     "%s je na maximální úrovni",
		KeyDeniedSell:      "Tento vůz nelze prodat",
		KeyDeniedUnknown:   "Neznámá položka",
		KeySold:            "Prodáno: %s za %.0f šrotu",
		KeyHubBuilt:        "Nový uzel %s online",
		KeyDerailed:        "Hardwarová bouře! Vlak vykolejil",
		KeyDispatched:      "Dron vyslán: %s",
		KeyRefuel:          "Doplnění +%.0f energie",
		KeyRebootComplete:  "Restart dokončen, vlak je zpět na trati",
		KeyRebootNotNeeded: "Restart není potřeba",
		KeyRebootInFlight:  "Restart již probíhá",
		KeyDocked:          "Dron zakotvil",
		KeyTerminalArrival: "Příjezd do terminálu",
		KeyTerminalSettled: "Terminál: +%.0f šrotu, nastoupilo %d",
		KeyGodMode:         "Režim boha: +%.0f šrotu",
		KeySkinApplied:     "Vzhled použit: %s",
		KeySkinFailed:      "Generování vzhledu selhalo, vzhled zůstává",
		KeyLanguage:        "Jazyk: čeština",
		KeySpeed:           "Rychlost nastavena na %.0f",
		KeyLivery:          "Barva lakování změněna",
		KeyGeometry:        "Okraj trati %.0f, poloměr %.0f",
		KeyPaused:          "POZASTAVENO",
		KeyRebootHint:      "VYKOLEJENO - stiskni r pro vyslání dronu",
	},
}

// Translate formats a message; unknown languages fall back to English, unknown keys to the key itself
func Translate(lang Lang, key Key, args ...any) string {
	table, ok := messages[lang]
	if !ok {
		table = messages[LangEnglish]
	}
	format, ok := table[key]
	if !ok {
		format, ok = messages[LangEnglish][key]
		if !ok {
			return string(key)
		}
	}
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
