// Code generated from job.proto in the layout of protoc-gen-go v1.36.6.
// Regenerate with `go generate ./api/v1` when job.proto changes.
// source: api/v1/job.proto

package v1

import (
	protoreflect "google.golang.org/protobuf/reflect/protoreflect"
	protoimpl "google.golang.org/protobuf/runtime/protoimpl"
	timestamppb "google.golang.org/protobuf/types/known/timestamppb"
	reflect "reflect"
	sync "sync"
	unsafe "unsafe"
)

const (
	// Verify that this generated code is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(20 - protoimpl.MinVersion)
	// Verify that runtime/protoimpl is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(protoimpl.MaxVersion - 20)
)

type JobType int32

const (
	JobType_JOB_TYPE_UNSPECIFIED JobType = 0
	JobType_JOB_TYPE_PATCHING    JobType = 1
	JobType_JOB_TYPE_PREDICTION  JobType = 2
	JobType_JOB_TYPE_MERGING     JobType = 3
)

// Enum value maps for JobType.
var (
	JobType_name = map[int32]string{
		0: "JOB_TYPE_UNSPECIFIED",
		1: "JOB_TYPE_PATCHING",
		2: "JOB_TYPE_PREDICTION",
		3: "JOB_TYPE_MERGING",
	}
	JobType_value = map[string]int32{
		"JOB_TYPE_UNSPECIFIED": 0,
		"JOB_TYPE_PATCHING":    1,
		"JOB_TYPE_PREDICTION":  2,
		"JOB_TYPE_MERGING":     3,
	}
)

func (x JobType) Enum() *JobType {
	p := new(JobType)
	*p = x
	return p
}

func (x JobType) String() string {
	return protoimpl.X.EnumStringOf(x.Descriptor(), protoreflect.EnumNumber(x))
}

func (JobType) Descriptor() protoreflect.EnumDescriptor {
	return file_api_v1_job_proto_enumTypes[0].Descriptor()
}

func (JobType) Type() protoreflect.EnumType {
	return &file_api_v1_job_proto_enumTypes[0]
}

func (x JobType) Number() protoreflect.EnumNumber {
	return protoreflect.EnumNumber(x)
}

// Deprecated: Use JobType.Descriptor instead.
func (JobType) EnumDescriptor() ([]byte, []int) {
	return file_api_v1_job_proto_rawDescGZIP(), []int{0}
}

type JobStatus int32

const (
	JobStatus_JOB_STATUS_UNSPECIFIED JobStatus = 0
	JobStatus_JOB_STATUS_STARTED     JobStatus = 1
	JobStatus_JOB_STATUS_RUNNING     JobStatus = 2
	JobStatus_JOB_STATUS_COMPLETED   JobStatus = 3
	JobStatus_JOB_STATUS_FAILED      JobStatus = 4
)

// Enum value maps for JobStatus.
var (
	JobStatus_name = map[int32]string{
		0: "JOB_STATUS_UNSPECIFIED",
		1: "JOB_STATUS_STARTED",
		2: "JOB_STATUS_RUNNING",
		3: "JOB_STATUS_COMPLETED",
		4: "JOB_STATUS_FAILED",
	}
	JobStatus_value = map[string]int32{
		"JOB_STATUS_UNSPECIFIED": 0,
		"JOB_STATUS_STARTED":     1,
		"JOB_STATUS_RUNNING":     2,
		"JOB_STATUS_COMPLETED":   3,
		"JOB_STATUS_FAILED":      4,
	}
)

func (x JobStatus) Enum() *JobStatus {
	p := new(JobStatus)
	*p = x
	return p
}

func (x JobStatus) String() string {
	return protoimpl.X.EnumStringOf(x.Descriptor(), protoreflect.EnumNumber(x))
}

func (JobStatus) Descriptor() protoreflect.EnumDescriptor {
	return file_api_v1_job_proto_enumTypes[1].Descriptor()
}

func (JobStatus) Type() protoreflect.EnumType {
	return &file_api_v1_job_proto_enumTypes[1]
}

func (x JobStatus) Number() protoreflect.EnumNumber {
	return protoreflect.EnumNumber(x)
}

// Deprecated: Use JobStatus.Descriptor instead.
func (JobStatus) EnumDescriptor() ([]byte, []int) {
	return file_api_v1_job_proto_rawDescGZIP(), []int{1}
}

type Job struct {
	state                 protoimpl.MessageState `protogen:"open.v1"`
	Id                    string                 `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	Type                  JobType                `protobuf:"varint,2,opt,name=type,proto3,enum=job.v1.JobType" json:"type,omitempty"`
	Target                string                 `protobuf:"bytes,3,opt,name=target,proto3" json:"target,omitempty"`
	Status                JobStatus              `protobuf:"varint,4,opt,name=status,proto3,enum=job.v1.JobStatus" json:"status,omitempty"`
	Progress              float64                `protobuf:"fixed64,5,opt,name=progress,proto3" json:"progress,omitempty"`
	ExitCode              int32                  `protobuf:"varint,6,opt,name=exit_code,json=exitCode,proto3" json:"exit_code,omitempty"`
	OutputLog             string                 `protobuf:"bytes,7,opt,name=output_log,json=outputLog,proto3" json:"output_log,omitempty"`
	ErrorLog              string                 `protobuf:"bytes,8,opt,name=error_log,json=errorLog,proto3" json:"error_log,omitempty"`
	Error                 string                 `protobuf:"bytes,9,opt,name=error,proto3" json:"error,omitempty"`
	StartedAt             *timestamppb.Timestamp `protobuf:"bytes,10,opt,name=started_at,json=startedAt,proto3" json:"started_at,omitempty"`
	ElapsedSeconds        int64                  `protobuf:"varint,11,opt,name=elapsed_seconds,json=elapsedSeconds,proto3" json:"elapsed_seconds,omitempty"`
	EstimatedTotalSeconds int64                  `protobuf:"varint,12,opt,name=estimated_total_seconds,json=estimatedTotalSeconds,proto3" json:"estimated_total_seconds,omitempty"`
	FinishedAt            *timestamppb.Timestamp `protobuf:"bytes,13,opt,name=finished_at,json=finishedAt,proto3" json:"finished_at,omitempty"`
	ExpireAt              *timestamppb.Timestamp `protobuf:"bytes,14,opt,name=expire_at,json=expireAt,proto3" json:"expire_at,omitempty"`
	Version               uint64                 `protobuf:"varint,15,opt,name=version,proto3" json:"version,omitempty"`
	unknownFields         protoimpl.UnknownFields
	sizeCache             protoimpl.SizeCache
}

func (x *Job) Reset() {
	*x = Job{}
	mi := &file_api_v1_job_proto_msgTypes[0]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *Job) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*Job) ProtoMessage() {}

func (x *Job) ProtoReflect() protoreflect.Message {
	mi := &file_api_v1_job_proto_msgTypes[0]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use Job.ProtoReflect.Descriptor instead.
func (*Job) Descriptor() ([]byte, []int) {
	return file_api_v1_job_proto_rawDescGZIP(), []int{0}
}

func (x *Job) GetId() string {
	if x != nil {
		return x.Id
	}
	return ""
}

func (x *Job) GetType() JobType {
	if x != nil {
		return x.Type
	}
	return JobType_JOB_TYPE_UNSPECIFIED
}

func (x *Job) GetTarget() string {
	if x != nil {
		return x.Target
	}
	return ""
}

func (x *Job) GetStatus() JobStatus {
	if x != nil {
		return x.Status
	}
	return JobStatus_JOB_STATUS_UNSPECIFIED
}

func (x *Job) GetProgress() float64 {
	if x != nil {
		return x.Progress
	}
	return 0
}

func (x *Job) GetExitCode() int32 {
	if x != nil {
		return x.ExitCode
	}
	return 0
}

func (x *Job) GetOutputLog() string {
	if x != nil {
		return x.OutputLog
	}
	return ""
}

func (x *Job) GetErrorLog() string {
	if x != nil {
		return x.ErrorLog
	}
	return ""
}

func (x *Job) GetError() string {
	if x != nil {
		return x.Error
	}
	return ""
}

func (x *Job) GetStartedAt() *timestamppb.Timestamp {
	if x != nil {
		return x.StartedAt
	}
	return nil
}

func (x *Job) GetElapsedSeconds() int64 {
	if x != nil {
		return x.ElapsedSeconds
	}
	return 0
}

func (x *Job) GetEstimatedTotalSeconds() int64 {
	if x != nil {
		return x.EstimatedTotalSeconds
	}
	return 0
}

func (x *Job) GetFinishedAt() *timestamppb.Timestamp {
	if x != nil {
		return x.FinishedAt
	}
	return nil
}

func (x *Job) GetExpireAt() *timestamppb.Timestamp {
	if x != nil {
		return x.ExpireAt
	}
	return nil
}

func (x *Job) GetVersion() uint64 {
	if x != nil {
		return x.Version
	}
	return 0
}

type SubmitJobRequest struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Type          JobType                `protobuf:"varint,1,opt,name=type,proto3,enum=job.v1.JobType" json:"type,omitempty"`
	Target        string                 `protobuf:"bytes,2,opt,name=target,proto3" json:"target,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *SubmitJobRequest) Reset() {
	*x = SubmitJobRequest{}
	mi := &file_api_v1_job_proto_msgTypes[1]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *SubmitJobRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*SubmitJobRequest) ProtoMessage() {}

func (x *SubmitJobRequest) ProtoReflect() protoreflect.Message {
	mi := &file_api_v1_job_proto_msgTypes[1]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use SubmitJobRequest.ProtoReflect.Descriptor instead.
func (*SubmitJobRequest) Descriptor() ([]byte, []int) {
	return file_api_v1_job_proto_rawDescGZIP(), []int{1}
}

func (x *SubmitJobRequest) GetType() JobType {
	if x != nil {
		return x.Type
	}
	return JobType_JOB_TYPE_UNSPECIFIED
}

func (x *SubmitJobRequest) GetTarget() string {
	if x != nil {
		return x.Target
	}
	return ""
}

type SubmitJobResponse struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Id            string                 `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *SubmitJobResponse) Reset() {
	*x = SubmitJobResponse{}
	mi := &file_api_v1_job_proto_msgTypes[2]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *SubmitJobResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*SubmitJobResponse) ProtoMessage() {}

func (x *SubmitJobResponse) ProtoReflect() protoreflect.Message {
	mi := &file_api_v1_job_proto_msgTypes[2]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use SubmitJobResponse.ProtoReflect.Descriptor instead.
func (*SubmitJobResponse) Descriptor() ([]byte, []int) {
	return file_api_v1_job_proto_rawDescGZIP(), []int{2}
}

func (x *SubmitJobResponse) GetId() string {
	if x != nil {
		return x.Id
	}
	return ""
}

type QueryJobRequest struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Id            string                 `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *QueryJobRequest) Reset() {
	*x = QueryJobRequest{}
	mi := &file_api_v1_job_proto_msgTypes[3]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *QueryJobRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*QueryJobRequest) ProtoMessage() {}

func (x *QueryJobRequest) ProtoReflect() protoreflect.Message {
	mi := &file_api_v1_job_proto_msgTypes[3]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use QueryJobRequest.ProtoReflect.Descriptor instead.
func (*QueryJobRequest) Descriptor() ([]byte, []int) {
	return file_api_v1_job_proto_rawDescGZIP(), []int{3}
}

func (x *QueryJobRequest) GetId() string {
	if x != nil {
		return x.Id
	}
	return ""
}

type QueryJobResponse struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Job           *Job                   `protobuf:"bytes,1,opt,name=job,proto3" json:"job,omitempty"`
	Expired       bool                   `protobuf:"varint,2,opt,name=expired,proto3" json:"expired,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *QueryJobResponse) Reset() {
	*x = QueryJobResponse{}
	mi := &file_api_v1_job_proto_msgTypes[4]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *QueryJobResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*QueryJobResponse) ProtoMessage() {}

func (x *QueryJobResponse) ProtoReflect() protoreflect.Message {
	mi := &file_api_v1_job_proto_msgTypes[4]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use QueryJobResponse.ProtoReflect.Descriptor instead.
func (*QueryJobResponse) Descriptor() ([]byte, []int) {
	return file_api_v1_job_proto_rawDescGZIP(), []int{4}
}

func (x *QueryJobResponse) GetJob() *Job {
	if x != nil {
		return x.Job
	}
	return nil
}

func (x *QueryJobResponse) GetExpired() bool {
	if x != nil {
		return x.Expired
	}
	return false
}

type ListJobsRequest struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *ListJobsRequest) Reset() {
	*x = ListJobsRequest{}
	mi := &file_api_v1_job_proto_msgTypes[5]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *ListJobsRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*ListJobsRequest) ProtoMessage() {}

func (x *ListJobsRequest) ProtoReflect() protoreflect.Message {
	mi := &file_api_v1_job_proto_msgTypes[5]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use ListJobsRequest.ProtoReflect.Descriptor instead.
func (*ListJobsRequest) Descriptor() ([]byte, []int) {
	return file_api_v1_job_proto_rawDescGZIP(), []int{5}
}

type ListJobsResponse struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Jobs          []*Job                 `protobuf:"bytes,1,rep,name=jobs,proto3" json:"jobs,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *ListJobsResponse) Reset() {
	*x = ListJobsResponse{}
	mi := &file_api_v1_job_proto_msgTypes[6]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *ListJobsResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*ListJobsResponse) ProtoMessage() {}

func (x *ListJobsResponse) ProtoReflect() protoreflect.Message {
	mi := &file_api_v1_job_proto_msgTypes[6]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use ListJobsResponse.ProtoReflect.Descriptor instead.
func (*ListJobsResponse) Descriptor() ([]byte, []int) {
	return file_api_v1_job_proto_rawDescGZIP(), []int{6}
}

func (x *ListJobsResponse) GetJobs() []*Job {
	if x != nil {
		return x.Jobs
	}
	return nil
}

type SweepExpiredRequest struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *SweepExpiredRequest) Reset() {
	*x = SweepExpiredRequest{}
	mi := &file_api_v1_job_proto_msgTypes[7]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *SweepExpiredRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*SweepExpiredRequest) ProtoMessage() {}

func (x *SweepExpiredRequest) ProtoReflect() protoreflect.Message {
	mi := &file_api_v1_job_proto_msgTypes[7]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use SweepExpiredRequest.ProtoReflect.Descriptor instead.
func (*SweepExpiredRequest) Descriptor() ([]byte, []int) {
	return file_api_v1_job_proto_rawDescGZIP(), []int{7}
}

type SweepExpiredResponse struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Evicted       int32                  `protobuf:"varint,1,opt,name=evicted,proto3" json:"evicted,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *SweepExpiredResponse) Reset() {
	*x = SweepExpiredResponse{}
	mi := &file_api_v1_job_proto_msgTypes[8]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *SweepExpiredResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*SweepExpiredResponse) ProtoMessage() {}

func (x *SweepExpiredResponse) ProtoReflect() protoreflect.Message {
	mi := &file_api_v1_job_proto_msgTypes[8]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use SweepExpiredResponse.ProtoReflect.Descriptor instead.
func (*SweepExpiredResponse) Descriptor() ([]byte, []int) {
	return file_api_v1_job_proto_rawDescGZIP(), []int{8}
}

func (x *SweepExpiredResponse) GetEvicted() int32 {
	if x != nil {
		return x.Evicted
	}
	return 0
}

type WatchJobsRequest struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Id            string                 `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *WatchJobsRequest) Reset() {
	*x = WatchJobsRequest{}
	mi := &file_api_v1_job_proto_msgTypes[9]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *WatchJobsRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*WatchJobsRequest) ProtoMessage() {}

func (x *WatchJobsRequest) ProtoReflect() protoreflect.Message {
	mi := &file_api_v1_job_proto_msgTypes[9]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use WatchJobsRequest.ProtoReflect.Descriptor instead.
func (*WatchJobsRequest) Descriptor() ([]byte, []int) {
	return file_api_v1_job_proto_rawDescGZIP(), []int{9}
}

func (x *WatchJobsRequest) GetId() string {
	if x != nil {
		return x.Id
	}
	return ""
}

type JobUpdate struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Id            string                 `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	Job           *Job                   `protobuf:"bytes,2,opt,name=job,proto3" json:"job,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *JobUpdate) Reset() {
	*x = JobUpdate{}
	mi := &file_api_v1_job_proto_msgTypes[10]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *JobUpdate) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*JobUpdate) ProtoMessage() {}

func (x *JobUpdate) ProtoReflect() protoreflect.Message {
	mi := &file_api_v1_job_proto_msgTypes[10]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use JobUpdate.ProtoReflect.Descriptor instead.
func (*JobUpdate) Descriptor() ([]byte, []int) {
	return file_api_v1_job_proto_rawDescGZIP(), []int{10}
}

func (x *JobUpdate) GetId() string {
	if x != nil {
		return x.Id
	}
	return ""
}

func (x *JobUpdate) GetJob() *Job {
	if x != nil {
		return x.Job
	}
	return nil
}

var File_api_v1_job_proto protoreflect.FileDescriptor

const file_api_v1_job_proto_rawDesc = "" +
	"\n" +
	"\x10api/v1/job.proto\x12\x06job.v1\x1a\x1fgoogle/protobuf/timestamp.proto\"\xb4\x04\n" +
	"\x03Job\x12\x0e\n" +
	"\x02id\x18\x01 \x01(\tR\x02id\x12#\n" +
	"\x04type\x18\x02 \x01(\x0e2\x0f.job.v1.JobTypeR\x04type\x12\x16\n" +
	"\x06target\x18\x03 \x01(\tR\x06target\x12)\n" +
	"\x06status\x18\x04 \x01(\x0e2\x11.job.v1.JobStatusR\x06status\x12\x1a\n" +
	"\bprogress\x18\x05 \x01(\x01R\bprogress\x12\x1b\n" +
	"\texit_code\x18\x06 \x01(\x05R\bexitCode\x12\x1d\n" +
	"\n" +
	"output_log\x18\a \x01(\tR\toutputLog\x12\x1b\n" +
	"\terror_log\x18\b \x01(\tR\berrorLog\x12\x14\n" +
	"\x05error\x18\t \x01(\tR\x05error\x129\n" +
	"\n" +
	"started_at\x18\n" +
	" \x01(\v2\x1a.google.protobuf.TimestampR\tstartedAt\x12'\n" +
	"\x0felapsed_seconds\x18\v \x01(\x03R\x0eelapsedSeconds\x126\n" +
	"\x17estimated_total_seconds\x18\f \x01(\x03R\x15estimatedTotalSeconds\x12;\n" +
	"\vfinished_at\x18\r \x01(\v2\x1a.google.protobuf.TimestampR\n" +
	"finishedAt\x127\n" +
	"\texpire_at\x18\x0e \x01(\v2\x1a.google.protobuf.TimestampR\bexpireAt\x12\x18\n" +
	"\aversion\x18\x0f \x01(\x04R\aversion\"O\n" +
	"\x10SubmitJobRequest\x12#\n" +
	"\x04type\x18\x01 \x01(\x0e2\x0f.job.v1.JobTypeR\x04type\x12\x16\n" +
	"\x06target\x18\x02 \x01(\tR\x06target\"#\n" +
	"\x11SubmitJobResponse\x12\x0e\n" +
	"\x02id\x18\x01 \x01(\tR\x02id\"!\n" +
	"\x0fQueryJobRequest\x12\x0e\n" +
	"\x02id\x18\x01 \x01(\tR\x02id\"K\n" +
	"\x10QueryJobResponse\x12\x1d\n" +
	"\x03job\x18\x01 \x01(\v2\v.job.v1.JobR\x03job\x12\x18\n" +
	"\aexpired\x18\x02 \x01(\bR\aexpired\"\x11\n" +
	"\x0fListJobsRequest\"3\n" +
	"\x10ListJobsResponse\x12\x1f\n" +
	"\x04jobs\x18\x01 \x03(\v2\v.job.v1.JobR\x04jobs\"\x15\n" +
	"\x13SweepExpiredRequest\"0\n" +
	"\x14SweepExpiredResponse\x12\x18\n" +
	"\aevicted\x18\x01 \x01(\x05R\aevicted\"\"\n" +
	"\x10WatchJobsRequest\x12\x0e\n" +
	"\x02id\x18\x01 \x01(\tR\x02id\":\n" +
	"\tJobUpdate\x12\x0e\n" +
	"\x02id\x18\x01 \x01(\tR\x02id\x12\x1d\n" +
	"\x03job\x18\x02 \x01(\v2\v.job.v1.JobR\x03job*i\n" +
	"\aJobType\x12\x18\n" +
	"\x14JOB_TYPE_UNSPECIFIED\x10\x00\x12\x15\n" +
	"\x11JOB_TYPE_PATCHING\x10\x01\x12\x17\n" +
	"\x13JOB_TYPE_PREDICTION\x10\x02\x12\x14\n" +
	"\x10JOB_TYPE_MERGING\x10\x03*\x88\x01\n" +
	"\tJobStatus\x12\x1a\n" +
	"\x16JOB_STATUS_UNSPECIFIED\x10\x00\x12\x16\n" +
	"\x12JOB_STATUS_STARTED\x10\x01\x12\x16\n" +
	"\x12JOB_STATUS_RUNNING\x10\x02\x12\x18\n" +
	"\x14JOB_STATUS_COMPLETED\x10\x03\x12\x15\n" +
	"\x11JOB_STATUS_FAILED\x10\x042\xd3\x02\n" +
	"\n" +
	"JobService\x12@\n" +
	"\tSubmitJob\x12\x18.job.v1.SubmitJobRequest\x1a\x19.job.v1.SubmitJobResponse\x12=\n" +
	"\bQueryJob\x12\x17.job.v1.QueryJobRequest\x1a\x18.job.v1.QueryJobResponse\x12=\n" +
	"\bListJobs\x12\x17.job.v1.ListJobsRequest\x1a\x18.job.v1.ListJobsResponse\x12I\n" +
	"\fSweepExpired\x12\x1b.job.v1.SweepExpiredRequest\x1a\x1c.job.v1.SweepExpiredResponse\x12:\n" +
	"\tWatchJobs\x12\x18.job.v1.WatchJobsRequest\x1a\x11.job.v1.JobUpdate0\x01B)Z'github.com/nixpig/slideworker/api/v1;v1b\x06proto3"

var (
	file_api_v1_job_proto_rawDescOnce sync.Once
	file_api_v1_job_proto_rawDescData []byte
)

func file_api_v1_job_proto_rawDescGZIP() []byte {
	file_api_v1_job_proto_rawDescOnce.Do(func() {
		file_api_v1_job_proto_rawDescData = protoimpl.X.CompressGZIP(unsafe.Slice(unsafe.StringData(file_api_v1_job_proto_rawDesc), len(file_api_v1_job_proto_rawDesc)))
	})
	return file_api_v1_job_proto_rawDescData
}

var file_api_v1_job_proto_enumTypes = make([]protoimpl.EnumInfo, 2)
var file_api_v1_job_proto_msgTypes = make([]protoimpl.MessageInfo, 11)
var file_api_v1_job_proto_goTypes = []any{
	(JobType)(0),                  // 0: job.v1.JobType
	(JobStatus)(0),                // 1: job.v1.JobStatus
	(*Job)(nil),                   // 2: job.v1.Job
	(*SubmitJobRequest)(nil),      // 3: job.v1.SubmitJobRequest
	(*SubmitJobResponse)(nil),     // 4: job.v1.SubmitJobResponse
	(*QueryJobRequest)(nil),       // 5: job.v1.QueryJobRequest
	(*QueryJobResponse)(nil),      // 6: job.v1.QueryJobResponse
	(*ListJobsRequest)(nil),       // 7: job.v1.ListJobsRequest
	(*ListJobsResponse)(nil),      // 8: job.v1.ListJobsResponse
	(*SweepExpiredRequest)(nil),   // 9: job.v1.SweepExpiredRequest
	(*SweepExpiredResponse)(nil),  // 10: job.v1.SweepExpiredResponse
	(*WatchJobsRequest)(nil),      // 11: job.v1.WatchJobsRequest
	(*JobUpdate)(nil),             // 12: job.v1.JobUpdate
	(*timestamppb.Timestamp)(nil), // 13: google.protobuf.Timestamp
}
var file_api_v1_job_proto_depIdxs = []int32{
	0,  // 0: job.v1.Job.type:type_name -> job.v1.JobType
	1,  // 1: job.v1.Job.status:type_name -> job.v1.JobStatus
	13, // 2: job.v1.Job.started_at:type_name -> google.protobuf.Timestamp
	13, // 3: job.v1.Job.finished_at:type_name -> google.protobuf.Timestamp
	13, // 4: job.v1.Job.expire_at:type_name -> google.protobuf.Timestamp
	0,  // 5: job.v1.SubmitJobRequest.type:type_name -> job.v1.JobType
	2,  // 6: job.v1.QueryJobResponse.job:type_name -> job.v1.Job
	2,  // 7: job.v1.ListJobsResponse.jobs:type_name -> job.v1.Job
	2,  // 8: job.v1.JobUpdate.job:type_name -> job.v1.Job
	3,  // 9: job.v1.JobService.SubmitJob:input_type -> job.v1.SubmitJobRequest
	5,  // 10: job.v1.JobService.QueryJob:input_type -> job.v1.QueryJobRequest
	7,  // 11: job.v1.JobService.ListJobs:input_type -> job.v1.ListJobsRequest
	9,  // 12: job.v1.JobService.SweepExpired:input_type -> job.v1.SweepExpiredRequest
	11, // 13: job.v1.JobService.WatchJobs:input_type -> job.v1.WatchJobsRequest
	4,  // 14: job.v1.JobService.SubmitJob:output_type -> job.v1.SubmitJobResponse
	6,  // 15: job.v1.JobService.QueryJob:output_type -> job.v1.QueryJobResponse
	8,  // 16: job.v1.JobService.ListJobs:output_type -> job.v1.ListJobsResponse
	10, // 17: job.v1.JobService.SweepExpired:output_type -> job.v1.SweepExpiredResponse
	12, // 18: job.v1.JobService.WatchJobs:output_type -> job.v1.JobUpdate
	14, // [14:19] is the sub-list for method output_type
	9,  // [9:14] is the sub-list for method input_type
	9,  // [9:9] is the sub-list for extension type_name
	9,  // [9:9] is the sub-list for extension extendee
	0,  // [0:9] is the sub-list for field type_name
}

func init() { file_api_v1_job_proto_init() }
func file_api_v1_job_proto_init() {
	if File_api_v1_job_proto != nil {
		return
	}
	type x struct{}
	out := protoimpl.TypeBuilder{
		File: protoimpl.DescBuilder{
			GoPackagePath: reflect.TypeOf(x{}).PkgPath(),
			RawDescriptor: unsafe.Slice(unsafe.StringData(file_api_v1_job_proto_rawDesc), len(file_api_v1_job_proto_rawDesc)),
			NumEnums:      2,
			NumMessages:   11,
			NumExtensions: 0,
			NumServices:   1,
		},
		GoTypes:           file_api_v1_job_proto_goTypes,
		DependencyIndexes: file_api_v1_job_proto_depIdxs,
		EnumInfos:         file_api_v1_job_proto_enumTypes,
		MessageInfos:      file_api_v1_job_proto_msgTypes,
	}.Build()
	File_api_v1_job_proto = out.File
	file_api_v1_job_proto_goTypes = nil
	file_api_v1_job_proto_depIdxs = nil
}
