package perf

import "github.com/sirupsen/logrus"

// DataQuality counts records excluded from analysis. Exclusions are never errors.
type DataQuality struct {
	Total        int `json:"total"`
	Timed        int `json:"timed"`        // COMPLETE with a duration
	Malformed    int `json:"malformed"`    // COMPLETE without a duration
	NotComplete  int `json:"not_complete"` // START or ERROR phase
	Unattributed int `json:"unattributed"` // timed but without a load metric
}

// AssessQuality counts the records of a dataset by analysis eligibility.
func AssessQuality(ds *Dataset) DataQuality {
	var q DataQuality
	if ds == nil {
		return q
	}
	for _, r := range ds.records {
		q.Total++
		switch {
		case r.Malformed():
			q.Malformed++
		case r.Phase != PhaseComplete:
			q.NotComplete++
		default:
			q.Timed++
			if r.LoadMetric == nil {
				q.Unattributed++
			}
		}
	}
	return q
}

// log reports exclusions for a dataset.
func (q DataQuality) log(version string) {
	if q.Malformed > 0 {
		logrus.Warnf("dataset %q: %d COMPLETE record(s) without a duration excluded", version, q.Malformed)
	}
	if q.Unattributed > 0 {
		logrus.Debugf("dataset %q: %d timed record(s) without a load metric excluded from bucketing", version, q.Unattributed)
	}
}
