package nn

import "fmt"

// Reporter receives training progress from Fit. Reporting is a side effect
// outside the numeric core; implementations must not mutate the network.
type Reporter interface {
	// BatchDone is called after each mini-batch update within an epoch.
	BatchDone(epoch, batch, totalBatches int)
	// EpochDone is called after each epoch with the validation metrics.
	// Accuracy and meanCost are zero when no validation samples were held
	// out (datasets smaller than 10 examples).
	EpochDone(epoch, totalEpochs int, accuracy, meanCost float32)
}

// NopReporter discards all progress events. The default for Fit.
type NopReporter struct{}

// BatchDone does nothing.
func (NopReporter) BatchDone(int, int, int) {}

// EpochDone does nothing.
func (NopReporter) EpochDone(int, int, float32, float32) {}

// ConsoleReporter prints progress to stdout: a carriage-return batch ticker
// within the epoch and one summary line per epoch.
type ConsoleReporter struct{}

// BatchDone prints the in-epoch batch ticker.
func (ConsoleReporter) BatchDone(epoch, batch, totalBatches int) {
	fmt.Printf("\repoch %d: batch %d/%d", epoch, batch, totalBatches)
}

// EpochDone prints the per-epoch validation summary.
func (ConsoleReporter) EpochDone(epoch, totalEpochs int, accuracy, meanCost float32) {
	fmt.Printf("\repoch %d/%d: accuracy=%.4f meanCost=%.6f\n", epoch, totalEpochs, accuracy, meanCost)
}
