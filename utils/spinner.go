package utils

import (
	"time"

	"github.com/briandowns/spinner"
)

var scanSpinner *spinner.Spinner

func StartSpinner() {
	scanSpinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	scanSpinner.Suffix = " scanning for idle resources..."
	scanSpinner.Start()
}

func StopSpinner() {
	if scanSpinner != nil && scanSpinner.Active() {
		scanSpinner.Stop()
	}
}
