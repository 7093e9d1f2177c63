package expand

import "fmt"

// Stage is the last pipeline step an expansion reached.
type Stage uint8

const (
	StageReceived Stage = iota
	StageParsed
	StageExtracted
	StageGenerated
	StageCompleted
)

var stageNames = [...]string{
	StageReceived:  "received",
	StageParsed:    "parsed",
	StageExtracted: "extracted",
	StageGenerated: "generated",
	StageCompleted: "completed",
}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", s)
}
