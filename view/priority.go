package view

// Priority determines panel draw order. Lower values draw first
type Priority int

const (
	PriorityBackground Priority = iota
	PriorityMeter
	PriorityTable
	PriorityStatus
	PriorityHelp
)
