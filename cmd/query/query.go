// Command query loads a trained checkpoint and either scores an
// analogy-questions file or answers one-off similarity queries.
package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/golang/glog"
	"github.com/kho/easy"
	"github.com/kho/word2vec"
)

func main() {
	var args struct {
		Model string `name:"model" usage:"path to a native checkpoint"`
	}
	questionsFile := flag.String("questions", "", "path to an analogy-questions file; if set, runs accuracy and exits")
	restrictVocab := flag.Int("restrict-vocab", 30000, "restrict accuracy to the N most frequent words (0 disables)")
	topn := flag.Int("topn", 10, "number of neighbours to print for most-similar queries")
	positive := flag.String("positive", "", "comma-separated positive words for most_similar")
	negative := flag.String("negative", "", "comma-separated negative words for most_similar")
	cosmul := flag.Bool("cosmul", false, "use most_similar_cosmul instead of most_similar")
	doesntMatch := flag.String("doesnt-match", "", "comma-separated words to run doesnt_match over")
	easy.ParseFlagsAndArgs(&args)

	v, ws, neg, err := word2vec.LoadCheckpointFile(args.Model)
	if err != nil {
		glog.Fatal(err)
	}
	model := word2vec.LoadModel(word2vec.Config{Dim: ws.Dim()}, v, ws, neg)
	sim, err := model.Similarity()
	if err != nil {
		glog.Fatal(err)
	}

	if *questionsFile != "" {
		runAccuracy(sim, v, *questionsFile, *restrictVocab)
		return
	}

	if *doesntMatch != "" {
		word, err := sim.DoesntMatch(splitCSV(*doesntMatch))
		if err != nil {
			glog.Fatal(err)
		}
		fmt.Println(word)
		return
	}

	runMostSimilar(sim, *positive, *negative, *topn, *cosmul)
}

func runAccuracy(sim *word2vec.SimilarityIndex, v *word2vec.Vocab, path string, restrictVocab int) {
	f, err := easy.Open(path)
	if err != nil {
		glog.Fatal(err)
	}
	defer f.Close()
	questions, err := word2vec.ParseQuestions(f)
	if err != nil {
		glog.Fatal(err)
	}
	result := word2vec.Accuracy(sim, v, questions, restrictVocab)
	fmt.Print(result)
}

func runMostSimilar(sim *word2vec.SimilarityIndex, positive, negative string, topn int, cosmul bool) {
	pos := toWeighted(splitCSV(positive))
	neg := toWeighted(splitCSV(negative))

	var results []word2vec.Scored
	var err error
	if cosmul {
		results, err = sim.MostSimilarCosmul(pos, neg, topn)
	} else {
		results, err = sim.MostSimilar(pos, neg, topn)
	}
	if err != nil {
		glog.Fatal(err)
	}
	for _, r := range results {
		fmt.Printf("%s\t%g\n", r.Word, r.Score)
	}
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func toWeighted(words []string) []word2vec.WeightedWord {
	out := make([]word2vec.WeightedWord, len(words))
	for i, w := range words {
		out[i] = word2vec.WeightedWord{Word: w}
	}
	return out
}
