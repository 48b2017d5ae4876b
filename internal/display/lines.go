package display

import (
	"fmt"

	"code.sztanpet.net/zvpsz/rrc/internal/buzzer"
)

// lineCount defines how many lines of text fit on the screen
const lineCount = 4

// patternLines lays out a pattern as title, tone, timing and repeat lines
func patternLines(p buzzer.Pattern) [lineCount]string {
	if p.Silent() {
		return [lineCount]string{"BUZZER", "silence", "", ""}
	}

	tone := fmt.Sprintf("%d Hz", p.Frequency)
	if p.Frequency == 0 {
		tone = "no tone"
	}

	repeat := fmt.Sprintf("repeat %d", p.Repeat)
	if p.Repeat == 0 {
		repeat = "repeat forever"
	}

	return [lineCount]string{
		"BUZZER",
		tone,
		fmt.Sprintf("%v/%v", p.On, p.Off),
		repeat,
	}
}
