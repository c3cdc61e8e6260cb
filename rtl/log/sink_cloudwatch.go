package log

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
)

// cloudWatchBatchSize caps the number of buffered events flushed in a
// single PutLogEvents call, comfortably under the service's 10000-event
// and 1MB payload limits for log lines of reasonable length.
const cloudWatchBatchSize = 500

// CloudWatchSink batches records and ships them to a CloudWatch Logs log
// stream via aws-sdk-go-v2, grounded on
// _examples/moby-moby/daemon/logger/awslogs's use of the CloudWatch Logs
// SDK for the same purpose (ported here to the v2 client).
type CloudWatchSink struct {
	baseSink
	mu         sync.Mutex
	name       string
	client     *cloudwatchlogs.Client
	group      string
	stream     string
	sequence   *string
	buf        []types.InputLogEvent
}

// NewCloudWatchSink constructs a CloudWatchSink that writes to logGroup/
// logStream using client, identifying itself as name in a Tee. The log
// group and stream are expected to already exist.
func NewCloudWatchSink(name string, client *cloudwatchlogs.Client, logGroup, logStream string, formatter Formatter, filter Filter) *CloudWatchSink {
	return &CloudWatchSink{
		baseSink: newBaseSink(formatter, filter),
		name:     name,
		client:   client,
		group:    logGroup,
		stream:   logStream,
	}
}

func (s *CloudWatchSink) Name() string { return s.name }

func (s *CloudWatchSink) bufferOne(r Record) {
	s.buf = append(s.buf, types.InputLogEvent{
		Message:   aws.String(s.format(r)),
		Timestamp: aws.Int64(int64(r.TimeMicros) / 1000),
	})
}

func (s *CloudWatchSink) Write(r Record) {
	if !s.allow(r) {
		return
	}
	s.mu.Lock()
	s.bufferOne(r)
	full := len(s.buf) >= cloudWatchBatchSize
	s.mu.Unlock()
	if full {
		s.Flush()
	}
}

func (s *CloudWatchSink) WriteAtomic(a AtomicRecord) {
	s.mu.Lock()
	for _, r := range a.Records {
		if s.allow(r) {
			s.bufferOne(r)
		}
	}
	s.mu.Unlock()
	s.Flush()
}

// Flush ships every buffered event in a single PutLogEvents call. Events
// must be submitted to CloudWatch Logs in timestamp order.
func (s *CloudWatchSink) Flush() {
	s.mu.Lock()
	if len(s.buf) == 0 {
		s.mu.Unlock()
		return
	}
	batch := s.buf
	s.buf = nil
	token := s.sequence
	s.mu.Unlock()

	sort.Slice(batch, func(i, j int) bool {
		return aws.ToInt64(batch[i].Timestamp) < aws.ToInt64(batch[j].Timestamp)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	out, err := s.client.PutLogEvents(ctx, &cloudwatchlogs.PutLogEventsInput{
		LogGroupName:  aws.String(s.group),
		LogStreamName: aws.String(s.stream),
		LogEvents:     batch,
		SequenceToken: token,
	})
	if err != nil {
		return
	}
	s.mu.Lock()
	s.sequence = out.NextSequenceToken
	s.mu.Unlock()
}

func (s *CloudWatchSink) Close() error {
	s.Flush()
	return nil
}
