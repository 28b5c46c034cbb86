package word2vec

import (
	"bufio"
	"strings"

	"github.com/kho/easy"
)

// LineSentence reads a corpus in which each line is already one
// whitespace-tokenised sentence, ported from original_source's
// LineSentence. Restartable: each call to Sentences reopens path.
type LineSentence struct {
	Path string
}

func (c *LineSentence) Sentences() <-chan Sentence {
	out := make(chan Sentence)
	go func() {
		defer close(out)
		f, err := easy.Open(c.Path)
		if err != nil {
			return
		}
		defer f.Close()
		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 64*1024), 1<<20)
		for scanner.Scan() {
			out <- Sentence(strings.Fields(scanner.Text()))
		}
	}()
	return out
}

func (c *LineSentence) Restartable() bool { return true }

// Text8Corpus splits one giant unbroken line of whitespace-separated
// tokens into fixed-size chunks, ported from original_source's
// Text8Corpus. Streamed via bufio.Scanner with a word-boundary split
// function rather than the original's manual 8192-byte buffer
// management, since Go's Scanner already covers "never split a token
// across reads" idiomatically.
type Text8Corpus struct {
	Path       string
	MaxSentLen int // default 1000 if <= 0
}

func (c *Text8Corpus) maxLen() int {
	if c.MaxSentLen > 0 {
		return c.MaxSentLen
	}
	return 1000
}

func (c *Text8Corpus) Sentences() <-chan Sentence {
	out := make(chan Sentence)
	go func() {
		defer close(out)
		f, err := easy.Open(c.Path)
		if err != nil {
			return
		}
		defer f.Close()
		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 64*1024), 1<<20)
		scanner.Split(bufio.ScanWords)

		maxLen := c.maxLen()
		var sentence Sentence
		for scanner.Scan() {
			sentence = append(sentence, scanner.Text())
			if len(sentence) >= maxLen {
				out <- sentence
				sentence = nil
			}
		}
		if len(sentence) > 0 {
			out <- sentence
		}
	}()
	return out
}

func (c *Text8Corpus) Restartable() bool { return true }

// TaggedCorpus reads Brown-style "word/TAG" tokens, keeping only
// tokens whose tag is purely alphabetic and lower-casing the result to
// "word/ta", ported from original_source's BrownCorpus. One sentence
// per input line.
type TaggedCorpus struct {
	Path string
}

func (c *TaggedCorpus) Sentences() <-chan Sentence {
	out := make(chan Sentence)
	go func() {
		defer close(out)
		f, err := easy.Open(c.Path)
		if err != nil {
			return
		}
		defer f.Close()
		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 64*1024), 1<<20)
		for scanner.Scan() {
			var words Sentence
			for _, tok := range strings.Fields(scanner.Text()) {
				slash := strings.LastIndexByte(tok, '/')
				if slash < 0 {
					continue
				}
				word, tag := tok[:slash], tok[slash+1:]
				if len(tag) < 2 || !isAlphaTag(tag[:2]) {
					continue
				}
				words = append(words, strings.ToLower(word)+"/"+strings.ToLower(tag[:2]))
			}
			if len(words) == 0 {
				continue
			}
			out <- words
		}
	}()
	return out
}

func (c *TaggedCorpus) Restartable() bool { return true }

func isAlphaTag(tag string) bool {
	for _, r := range tag {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// RepeatCorpusNTimes wraps a Corpus so it can be replayed: if the
// wrapped corpus already reports itself Restartable, Sentences just
// calls through n times; otherwise the first pass is buffered into
// memory and replayed from there, per the corpus iterator contract's
// explicit single-pass fallback.
type RepeatCorpusNTimes struct {
	Inner Corpus
	N     int

	buffered [][]string
	have     bool
}

func (c *RepeatCorpusNTimes) Sentences() <-chan Sentence {
	out := make(chan Sentence)
	n := c.N
	if n <= 0 {
		n = 1
	}
	go func() {
		defer close(out)
		if isRestartable(c.Inner) {
			for i := 0; i < n; i++ {
				for s := range c.Inner.Sentences() {
					out <- s
				}
			}
			return
		}
		if !c.have {
			for s := range c.Inner.Sentences() {
				c.buffered = append(c.buffered, s)
			}
			c.have = true
		}
		for i := 0; i < n; i++ {
			for _, s := range c.buffered {
				out <- Sentence(s)
			}
		}
	}()
	return out
}

func (c *RepeatCorpusNTimes) Restartable() bool { return true }
