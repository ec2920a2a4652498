package shotloader

import (
	"fmt"
)

// ChannelJob is one channel to condition and calibrate.
type ChannelJob struct {
	Policy Policy
	Group  Group
	Name   string
	Sig    string
	Raw    RawSignal
}

type ChannelResult struct {
	Group Group
	Name  string
	Cal   CalChannel
	Err   error
}

func (s *ShotData) channelWorker(id int, jobs <-chan ChannelJob, results chan<- ChannelResult) {
	for job := range jobs {
		if configuration.Verbosity > 1 {
			message := fmt.Sprintf("Worker %d processing channel %s", id, job.Name)
			logger.Info(message, "workers")
		}
		results <- s.processJob(id, job)
	}
}

// processJob recovers per job so a panic costs one channel, not the pool:
// every job must produce exactly one result or ProcParallel blocks.
func (s *ShotData) processJob(id int, job ChannelJob) (result ChannelResult) {
	defer func() {
		if r := recover(); r != nil {
			message := fmt.Sprintf("Worker %d recovered from panic on channel %s: %v", id, job.Name, r)
			logger.Error(message)
			result = ChannelResult{
				Group: job.Group,
				Name:  job.Name,
				Err:   fmt.Errorf("panic processing %s: %v", job.Name, r),
			}
		}
	}()
	cal, err := s.processChannel(job.Policy, job.Sig, job.Raw)
	return ChannelResult{Group: job.Group, Name: job.Name, Cal: cal, Err: err}
}

func (s *ShotData) sendChannelsToWorkers(jobs chan<- ChannelJob) int {
	count := 0
	if configuration.ReadCurrents {
		jobs <- ChannelJob{
			Policy: PolicyCurrent,
			Group:  GroupCurrents,
			Name:   IpChannel,
			Sig:    IpSourceChannel,
			Raw:    s.Raw[GroupCurrents][IpSourceChannel],
		}
		count++
	}
	if configuration.ReadFluxLoops {
		for _, sig := range s.Sigs[GroupFluxLoops] {
			jobs <- ChannelJob{Policy: PolicyFluxLoop, Group: GroupFluxLoops, Name: sig, Sig: sig, Raw: s.Raw[GroupFluxLoops][sig]}
			count++
		}
	}
	if configuration.ReadBDots {
		for _, sig := range s.Sigs[GroupBDots] {
			jobs <- ChannelJob{Policy: PolicyBDot, Group: GroupBDots, Name: sig, Sig: sig, Raw: s.Raw[GroupBDots][sig]}
			count++
		}
	}
	close(jobs)
	return count
}

// ProcParallel runs the same per-channel processing as CalcIp, ProcFL and
// ProcBdot over a worker pool. Channels are independent, so the stored
// results match the serial path exactly.
func (s *ShotData) ProcParallel(numWorkers int) {
	// With no workers the consume loop would wait forever.
	if numWorkers < 1 {
		numWorkers = 1
	}
	// results is sized for every declared channel so workers never block
	// while the producer is still queueing jobs.
	jobs := make(chan ChannelJob, numWorkers)
	results := make(chan ChannelResult, len(FluxLoopChannels)+len(BDotChannels)+1)

	for w := 1; w <= numWorkers; w++ {
		go s.channelWorker(w, jobs, results)
	}
	nJobs := s.sendChannelsToWorkers(jobs)
	for i := 0; i < nJobs; i++ {
		result := <-results
		s.storeChannel(result.Group, result.Name, result.Cal, result.Err)
	}
}
