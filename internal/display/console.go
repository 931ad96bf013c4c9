package display

import "codeberg.org/mutker/windsensor/internal/logger"

// Console writes every update to the log.
type Console struct {
	log logger.Logger
}

func NewConsole() *Console {
	return &Console{log: logger.ForComponent("display")}
}

func (c *Console) Show(panel Panel, text string) {
	c.log.Info().Str("panel", string(panel)).Msg(text)
}

// Multi fans every update out to all sinks.
type Multi []Sink

func (m Multi) Show(panel Panel, text string) {
	for _, s := range m {
		s.Show(panel, text)
	}
}
