package jobstoreapi

import (
	"time"

	"golang.org/x/xerrors"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/moratsam/jobprogress/jobstore"
)

// Field names of the structpb encoding of a job.
const (
	fieldKey         = "key"
	fieldDescription = "description"
	fieldProgress    = "progress"
	fieldStartTime   = "start_time"
	fieldEndTime     = "end_time"
)

// encodeJob converts a job into its wire format. Timestamps are encoded as
// RFC3339 strings; a zero end time is encoded as an empty string.
func encodeJob(job *jobstore.Job) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		fieldKey:         string(job.Key),
		fieldDescription: job.Description,
		fieldProgress:    job.Progress,
		fieldStartTime:   encodeTime(job.StartTime),
		fieldEndTime:     encodeTime(job.EndTime),
	})
}

func decodeJob(msg *structpb.Struct) (*jobstore.Job, error) {
	if msg == nil {
		return nil, xerrors.New("decode job: nil message")
	}
	fields := msg.GetFields()

	startTime, err := decodeTime(fields[fieldStartTime].GetStringValue())
	if err != nil {
		return nil, xerrors.Errorf("decode job: start time: %w", err)
	}
	endTime, err := decodeTime(fields[fieldEndTime].GetStringValue())
	if err != nil {
		return nil, xerrors.Errorf("decode job: end time: %w", err)
	}

	return &jobstore.Job{
		Key:         jobstore.Key(fields[fieldKey].GetStringValue()),
		Description: fields[fieldDescription].GetStringValue(),
		Progress:    fields[fieldProgress].GetNumberValue(),
		StartTime:   startTime,
		EndTime:     endTime,
	}, nil
}

func encodeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func decodeTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
