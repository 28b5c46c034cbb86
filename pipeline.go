package word2vec

import (
	"sync"
	"sync/atomic"

	"github.com/golang/glog"
)

const defaultChunkSize = 100

// TrainingConfig holds every knob TrainingPipeline.Train reads. Zero
// values are not sane defaults for every field (Dim, Window, Workers
// in particular); callers build one explicitly, the way the teacher's
// CLI drivers build a flat options struct from flags rather than
// leaning on zero-value defaults.
type TrainingConfig struct {
	Dim       int
	Window    int
	Sg        bool // true: skip-gram, false: CBOW
	CbowMean  bool // divide CBOW's summed context by its size
	UseHS     bool
	Negative  int // negative samples per pair; 0 disables NEG
	Sample    float64
	Iter      int
	Alpha     float64
	MinAlpha  float64
	Workers   int
	ChunkSize int
	Seed      uint64
	LearnV    bool
	LearnH    bool
}

func (c *TrainingConfig) chunkSize() int {
	if c.ChunkSize > 0 {
		return c.ChunkSize
	}
	return defaultChunkSize
}

// job is one unit of work handed from the producer to a worker: a
// batch of up to chunksize sentences, already mapped to vocabulary
// ids with OOV tokens dropped and subsampling applied, plus the raw
// (pre-filtering) token count used to advance words_done.
type job struct {
	sentences [][]WordId
	rawWords  int
}

// TrainingPipeline runs the producer/worker SGD loop described in the
// data model and concurrency sections: one producer goroutine walks
// the corpus (iter times), subsamples and vocab-maps each sentence,
// and chunks the result into jobs on a bounded channel; Workers
// goroutines drain the channel and drive SgdKernel, sharing a single
// mutex-guarded words_done counter for the learning-rate anneal and
// throttled progress logging.
type TrainingPipeline struct {
	cfg   TrainingConfig
	vocab *Vocab
	ws    *WeightStore
	neg   *NegativeSampler
	sub   *Subsampler

	mu            sync.Mutex
	wordsDone     uint64
	totalExpected uint64
}

// NewTrainingPipeline wires together an already-built Vocab (with
// Huffman codes assigned if UseHS), WeightStore, NegativeSampler and
// Subsampler into a pipeline ready to Train.
func NewTrainingPipeline(cfg TrainingConfig, vocab *Vocab, ws *WeightStore, neg *NegativeSampler, sub *Subsampler) *TrainingPipeline {
	iter := cfg.Iter
	if iter <= 0 {
		iter = 1
	}
	var weighted float64
	for id := 0; id < vocab.CountedLen(); id++ {
		weighted += float64(vocab.Count(WordId(id))) * float64(vocab.KeepProb(WordId(id)))
	}
	return &TrainingPipeline{
		cfg:           cfg,
		vocab:         vocab,
		ws:            ws,
		neg:           neg,
		sub:           sub,
		totalExpected: uint64(float64(iter) * weighted),
	}
}

// Train runs the full training loop to completion, returning the
// total number of raw corpus words consumed. It requires corpus to be
// Restartable if cfg.Iter > 1, per the corpus iterator contract.
func (tp *TrainingPipeline) Train(corpus Corpus) (uint64, error) {
	iter := tp.cfg.Iter
	if iter <= 0 {
		iter = 1
	}
	if iter > 1 && !isRestartable(corpus) {
		return 0, ErrGeneratorCorpus
	}

	workers := tp.cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	queue := make(chan job, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(id int) {
			defer wg.Done()
			tp.runWorker(id, queue)
		}(i)
	}

	tp.produce(corpus, iter, queue)
	for i := 0; i < workers; i++ {
		queue <- job{} // sentinel: nil sentences, rawWords == 0
	}
	wg.Wait()

	return atomic.LoadUint64(&tp.wordsDone), nil
}

// produce walks corpus iter times, subsampling and vocab-mapping each
// sentence with a dedicated PRNG stream (workerRand seeded from the
// producer's own slot, worker id -1, so it never collides with an
// actual worker's noise/window stream), and enqueues chunksize-sized
// jobs.
func (tp *TrainingPipeline) produce(corpus Corpus, iter int, queue chan<- job) {
	rng := newWorkerRand(tp.cfg.Seed, -1)
	var batch [][]WordId
	var rawWords int

	flush := func() {
		if len(batch) == 0 {
			return
		}
		queue <- job{sentences: batch, rawWords: rawWords}
		batch = nil
		rawWords = 0
	}

	chunk := tp.cfg.chunkSize()
	for pass := 0; pass < iter; pass++ {
		for sentence := range corpus.Sentences() {
			rawWords += len(sentence)
			ids := make([]WordId, 0, len(sentence))
			for _, w := range sentence {
				id, ok := tp.vocab.IdOf(w)
				if !ok {
					continue
				}
				if !tp.sub.Keep(tp.vocab, id, rng.Float32) {
					continue
				}
				ids = append(ids, id)
			}
			if len(ids) > 0 {
				batch = append(batch, ids)
			}
			if len(batch) >= chunk {
				flush()
			}
		}
	}
	flush()
}

// runWorker drains queue until it receives the shutdown sentinel
// (a job with a nil sentences slice), training on each job's
// sentences with a learning rate sampled once per job.
func (tp *TrainingPipeline) runWorker(id int, queue <-chan job) {
	rng := newWorkerRand(tp.cfg.Seed, id)
	tc := newTrainContext(tp.ws, tp.vocab, tp.neg, rng, tp.cfg.Negative, tp.cfg.UseHS, tp.cfg.LearnV, tp.cfg.LearnH, tp.cfg.CbowMean)

	for j := range queue {
		if j.sentences == nil {
			return
		}
		alpha := tp.currentAlpha()
		for _, sentence := range j.sentences {
			tp.trainSentence(tc, sentence, alpha, rng)
		}
		tp.advance(j.rawWords)
	}
}

// currentAlpha samples the annealed learning rate once per job:
// alpha = max(min_alpha, alpha0 * (1 - words_done/total_expected)).
func (tp *TrainingPipeline) currentAlpha() float32 {
	tp.mu.Lock()
	done := tp.wordsDone
	tp.mu.Unlock()

	if tp.totalExpected == 0 {
		return float32(tp.cfg.Alpha)
	}
	progress := float64(done) / float64(tp.totalExpected)
	a := tp.cfg.Alpha * (1 - progress)
	if a < tp.cfg.MinAlpha {
		a = tp.cfg.MinAlpha
	}
	return float32(a)
}

// advance adds rawWords to words_done under the pipeline's mutex and
// throttles progress logging to roughly every 10000 words, matching
// the teacher's cadence for infrequent, summarized progress output
// rather than a line per job.
func (tp *TrainingPipeline) advance(rawWords int) {
	tp.mu.Lock()
	before := tp.wordsDone
	tp.wordsDone += uint64(rawWords)
	after := tp.wordsDone
	tp.mu.Unlock()

	if tp.totalExpected > 0 && before/10000 != after/10000 {
		glog.V(1).Infof("word2vec: trained on %d/%d words (%.1f%%)", after, tp.totalExpected, 100*float64(after)/float64(tp.totalExpected))
	}
}

// trainSentence runs the reduced-window walk over one already-mapped
// sentence, presenting each (centre, context) pair (SG) or each
// (context-set, centre) pair (CBOW) to the SGD kernel.
func (tp *TrainingPipeline) trainSentence(tc *trainContext, sentence []WordId, alpha float32, rng *workerRand) {
	window := tp.cfg.Window
	n := len(sentence)
	for pos := 0; pos < n; pos++ {
		b := rng.Reduced(window)
		lo := pos - window + b
		if lo < 0 {
			lo = 0
		}
		hi := pos + window - b
		if hi >= n {
			hi = n - 1
		}

		if tp.cfg.Sg {
			centre := sentence[pos]
			for c := lo; c <= hi; c++ {
				if c == pos {
					continue
				}
				tc.TrainPairSg(centre, sentence[c], alpha)
			}
			continue
		}

		var context []WordId
		for c := lo; c <= hi; c++ {
			if c == pos {
				continue
			}
			context = append(context, sentence[c])
		}
		if len(context) == 0 {
			continue
		}
		tc.TrainPairCbow(context, sentence[pos], alpha)
	}
}
