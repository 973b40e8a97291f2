package ctl

// Indirection layer to allow stubbing in tests

var (
	fnStatus = runStatus
	fnWatch  = runWatch
	fnDemo   = runDemo
	fnClear  = runClear
	fnCancel = runCancel
	fnMode   = runMode
)
