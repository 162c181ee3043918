package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	log "github.com/sirupsen/logrus"
	"github.com/sudarshand03/Optimal-Liver-Allocation/internal/app/exchange/eval"
)

// MatchLogFormatter writes one json line per feasible edge so the log can be
// fed straight into a matching mechanism.
type MatchLogFormatter struct{}

func (f *MatchLogFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var js, err = json.Marshal(entry.Data)
	if err != nil {
		var dataStr strings.Builder
		dataStr.WriteString("[")
		for k, v := range entry.Data {
			dataStr.WriteString(fmt.Sprintf("key: %s, val: %v; ", k, v))
		}
		dataStr.WriteString("]")
		return nil, fmt.Errorf("MatchLogger could not marshal json data: %s, err: %w", dataStr.String(), err)
	}
	return append(js, '\n'), nil
}

// Match is one logged feasible edge, as written by MatchLogFormatter.
type Match struct {
	Donor   int    `json:"donor"`
	Patient int    `json:"patient"`
	Lobe    string `json:"lobe"`
}

func NewMatchLogger(filename string) (*logrus.Logger, error) {
	var file, err = os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("MatchLogger could not open file: %s, err: %w", filename, err)
	}

	var matchLogger = logrus.New()
	matchLogger.SetFormatter(new(MatchLogFormatter))
	matchLogger.SetOutput(file)

	return matchLogger, nil
}

func LogResults(matchLogger *logrus.Logger, results chan eval.Result) {
	for result := range results {
		LogResult(matchLogger, result)
	}
}

func LogResult(matchLogger *logrus.Logger, result eval.Result) {
	matchLogger.WithFields(log.Fields{
		"donor":   result.Donor,
		"patient": result.Patient,
		"lobe":    result.Lobe.String(),
	}).Info("feasible")
}

// ReadMatchLogFile parses a log file written by a match logger back into Matches.
func ReadMatchLogFile(filename string) ([]Match, error) {
	var content, err = os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("MatchLogger could not read file: %s, err: %w", filename, err)
	}
	if len(strings.TrimSpace(string(content))) == 0 {
		return nil, nil
	}

	var lines = strings.Split(strings.TrimSpace(string(content)), "\n")
	var matches = make([]Match, len(lines))
	for i, line := range lines {
		if err := json.Unmarshal([]byte(line), &matches[i]); err != nil {
			return nil, fmt.Errorf("MatchLogger could not unmarshal line: %s, err: %w", line, err)
		}
	}

	return matches, nil
}
