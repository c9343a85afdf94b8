/*
Package nostril decides whether a string is word-like text or nonsense.

It was written to clean up identifiers mined from source code, where
strings such as "getFileHistory" or "runtogetherlikethis" should pass and
strings such as "qwxzjk" should be thrown away. The decision is
statistical: the string is cut into character n-grams of several lengths,
each n-gram is looked up in a table trained on English words, and the
combined score is compared with a threshold. It WILL get some strings
wrong. The default threshold leans towards calling a string real, so that
real identifiers are rarely discarded at the cost of letting some junk
through.

Only ASCII letters count. Digits, punctuation and whitespace are removed
before scoring and case is ignored, so "Foo_Bar42" is scored as "foobar".
Strings with fewer than 6 letters are refused with an *InputTooShortError
instead of being guessed at.


Usage

Use the default detector:

	isJunk, err := nostril.Nonsense("yoursinglestringhere")
	if errors.Is(err, nostril.ErrInputTooShort) {
		// decide for yourself
	}

See what is actually scored:

	nostril.SanitizeString("Foo_Bar42") // "foobar"

Tune a detector over the default table:

	d, err := nostril.GenerateDetector(
		nostril.WithLengths(3, 4),
		nostril.WithThreshold(-0.2),
		nostril.WithMinLength(8))

Train a table of your own. Use _lots_ of words:

	tr, err := nostril.NewTrainer(nostril.TrainerLengths(2, 3, 4, 5))
	err = tr.Add(wordsFile)
	stats, err := tr.Compile()
	err = nostril.SaveStats("words.model", stats)

Load it again, pick a threshold from some good and bad strings and build a
detector:

	stats, err := nostril.LoadStats("words.model")
	thresh, err := nostril.Calibrate(stats, nostril.DefaultConfig(), good, bad)
	d, err := nostril.NewDetector(stats, nostril.WithThreshold(thresh))

*/
package nostril
