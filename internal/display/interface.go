package display

// Panel names one status line of the display.
type Panel string

const (
	PanelWind        Panel = "wind"
	PanelTemperature Panel = "temperature"
	PanelAverage     Panel = "average"
)

// Panels lists every panel in display order.
var Panels = []Panel{PanelWind, PanelTemperature, PanelAverage}

// Sink shows status text. Show must be safe to call from any goroutine and
// must not block on slow consumers.
type Sink interface {
	Show(panel Panel, text string)
}

// Update is one panel change as sent to websocket clients.
type Update struct {
	Panel Panel  `json:"panel"`
	Text  string `json:"text"`
}
