// Command train builds a vocabulary and trains word vectors over a
// corpus, writing the result as a native checkpoint and, optionally,
// legacy text/binary vector files.
package main

import (
	"flag"
	"io"

	"github.com/golang/glog"
	"github.com/kho/easy"
	"github.com/kho/word2vec"
)

func main() {
	var args struct {
		Corpus string `name:"corpus" usage:"path to training corpus"`
		Output string `name:"output" usage:"path to write the native checkpoint"`
	}

	corpusFormat := flag.String("format", "line", "corpus format: line, text8, tagged")
	dim := flag.Int("size", 100, "vector dimensionality")
	window := flag.Int("window", 5, "max skip-gram/CBOW window size")
	minCount := flag.Uint64("min-count", 5, "minimum word count to keep a word")
	sample := flag.Float64("sample", 1e-3, "subsampling threshold for frequent words (0 disables)")
	sg := flag.Bool("sg", true, "use skip-gram (false selects CBOW)")
	cbowMean := flag.Bool("cbow-mean", true, "average rather than sum CBOW context vectors")
	hs := flag.Bool("hs", true, "use hierarchical softmax")
	negative := flag.Int("negative", 0, "number of negative samples (0 disables negative sampling)")
	iter := flag.Int("iter", 5, "number of training epochs")
	alpha := flag.Float64("alpha", 0.025, "initial learning rate")
	minAlpha := flag.Float64("min-alpha", 0.0001, "final learning rate")
	workers := flag.Int("workers", 4, "number of training worker goroutines")
	chunkSize := flag.Int("chunksize", 100, "sentences per training job")
	seed := flag.Uint64("seed", 1, "PRNG seed")
	nullWord := flag.Bool("null-word", false, "append a synthetic padding word")
	textOut := flag.String("text-output", "", "optional path to also write legacy text vectors")
	binOut := flag.String("binary-output", "", "optional path to also write legacy binary vectors")
	easy.ParseFlagsAndArgs(&args)

	cfg := word2vec.Config{
		Dim: *dim, Window: *window, MinCount: *minCount, Sample: *sample,
		Sg: *sg, CbowMean: *cbowMean, UseHS: *hs, Negative: *negative,
		Iter: *iter, Alpha: *alpha, MinAlpha: *minAlpha,
		Workers: *workers, ChunkSize: *chunkSize, Seed: *seed,
		NullWord: *nullWord, LearnV: true, LearnH: true,
	}

	corpus := openCorpus(*corpusFormat, args.Corpus)
	model := word2vec.NewModel(cfg)

	glog.Info("word2vec: building vocabulary")
	if err := model.BuildVocab(corpus); err != nil {
		glog.Fatal(err)
	}

	trainCorpus := corpus
	if *iter > 1 {
		// The pipeline makes Iter passes itself; the wrapper only makes
		// each pass replayable.
		trainCorpus = &word2vec.RepeatCorpusNTimes{Inner: corpus, N: 1}
	}

	var wordsDone uint64
	glog.Info("word2vec: training took ", easy.Timed(func() {
		var err error
		wordsDone, err = model.Train(trainCorpus)
		if err != nil {
			glog.Fatal(err)
		}
	}))
	glog.Infof("word2vec: trained on %d words", wordsDone)

	if err := word2vec.SaveCheckpointFile(args.Output, model.Vocab(), model.Weights(), model.Negative()); err != nil {
		glog.Fatal(err)
	}

	if *textOut != "" {
		writeVectors(*textOut, model, word2vec.SaveText)
	}
	if *binOut != "" {
		writeVectors(*binOut, model, word2vec.SaveBinary)
	}
}

func openCorpus(format, path string) word2vec.Corpus {
	switch format {
	case "line":
		return &word2vec.LineSentence{Path: path}
	case "text8":
		return &word2vec.Text8Corpus{Path: path}
	case "tagged":
		return &word2vec.TaggedCorpus{Path: path}
	default:
		glog.Fatalf("word2vec: unknown corpus format %q", format)
		return nil
	}
}

func writeVectors(path string, model *word2vec.Model, save func(w io.Writer, v *word2vec.Vocab, ws *word2vec.WeightStore) error) {
	f := easy.MustCreate(path)
	defer f.Close()
	if err := save(f, model.Vocab(), model.Weights()); err != nil {
		glog.Fatal(err)
	}
}
