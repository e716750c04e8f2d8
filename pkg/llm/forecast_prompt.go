package llm

import "strings"

const (
	// ExpectedForecastLines is 24 hours sampled every 10 minutes.
	ExpectedForecastLines = 24 * 6

	HistoricalDataHeader = "=== HISTORICAL DATA ==="
	TaskHeader           = "=== TASK ==="
)

const forecastPreamble = `You are an expert in IoT time-series analysis.

You have the following temperature data from a sensor over the last 7 days, with one reading every 10 minutes:

`

const forecastTask = `Analyze the temperature patterns of the week (time-of-day bands, differences between days, trends) and predict the temperatures for the next 24 hours at 10-minute intervals.

Return the prediction in this EXACT format, one line per 10-minute interval:
HH:MM -> XX.X°C

Start from the current time and continue for 24 hours. After the list, add a short summary of the detected trend and the confidence level of the prediction.`

// BuildPredictionPrompt embeds the rendered series verbatim between the data
// and task headers.
func BuildPredictionPrompt(series string) string {
	var sb strings.Builder
	sb.Grow(len(forecastPreamble) + len(series) + len(forecastTask) + 64)

	sb.WriteString(forecastPreamble)
	sb.WriteString(HistoricalDataHeader + "\n")
	sb.WriteString(series)
	sb.WriteString("\n")
	sb.WriteString(TaskHeader + "\n")
	sb.WriteString(forecastTask)

	return sb.String()
}
