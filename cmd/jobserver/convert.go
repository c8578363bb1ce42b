package main

import (
	"time"

	api "github.com/nixpig/slideworker/api/v1"
	"github.com/nixpig/slideworker/internal/jobmanager"
	"google.golang.org/protobuf/types/known/timestamppb"
)

var apiJobTypes = map[api.JobType]jobmanager.JobType{
	api.JobType_JOB_TYPE_PATCHING:   jobmanager.JobTypePatching,
	api.JobType_JOB_TYPE_PREDICTION: jobmanager.JobTypePrediction,
	api.JobType_JOB_TYPE_MERGING:    jobmanager.JobTypeMerging,
}

func fromAPIJobType(t api.JobType) (jobmanager.JobType, bool) {
	jobType, ok := apiJobTypes[t]
	return jobType, ok
}

func toAPIJobType(t jobmanager.JobType) api.JobType {
	for apiType, jobType := range apiJobTypes {
		if jobType == t {
			return apiType
		}
	}

	return api.JobType_JOB_TYPE_UNSPECIFIED
}

func toAPIStatus(s jobmanager.Status) api.JobStatus {
	switch s {
	case jobmanager.StatusStarted:
		return api.JobStatus_JOB_STATUS_STARTED
	case jobmanager.StatusRunning:
		return api.JobStatus_JOB_STATUS_RUNNING
	case jobmanager.StatusCompleted:
		return api.JobStatus_JOB_STATUS_COMPLETED
	case jobmanager.StatusFailed:
		return api.JobStatus_JOB_STATUS_FAILED
	default:
		return api.JobStatus_JOB_STATUS_UNSPECIFIED
	}
}

func toAPIJob(r jobmanager.Record) *api.Job {
	return &api.Job{
		Id:                    r.ID,
		Type:                  toAPIJobType(r.Type),
		Target:                r.Target,
		Status:                toAPIStatus(r.Status),
		Progress:              r.Progress,
		ExitCode:              int32(r.ExitCode),
		OutputLog:             r.Output,
		ErrorLog:              r.Errors,
		Error:                 r.Error,
		StartedAt:             timestamppb.New(r.StartedAt),
		ElapsedSeconds:        r.ElapsedSeconds(),
		EstimatedTotalSeconds: r.EstimatedTotalSeconds(),
		FinishedAt:            toTimestamp(r.FinishedAt),
		ExpireAt:              toTimestamp(r.ExpireAt),
		Version:               r.Version,
	}
}

func toTimestamp(t *time.Time) *timestamppb.Timestamp {
	if t == nil {
		return nil
	}

	return timestamppb.New(*t)
}
