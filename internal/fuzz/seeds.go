package fuzztests

import "testing"

var seedOutputs = []string{
	"",
	"error: unresolved import",
	"error[E0425]: cannot find value `x`\n --> temp.rs:3:5\n",
	"error: a\n --> main.rs:1:1\n\nwarning: b\n --> main.rs:2:2\n",
	"  /usr/bin/ld: cannot find -lssl\n",
	"error[E0382]: borrow of moved value: `v`\n --> src/main.rs:5:20\n  |\n3 |     let v = vec![1];\n  |         - move occurs\n",
	"error:\n",
	"warning[unused_variables]:\n --> m.rs:99999999999999999999:1\n",
	"\x1b[1m\x1b[31merror\x1b[0m: colored\r\n",
	"error: aborting due to 2 previous errors; 1 warning emitted\n",
	" --> orphan.rs:1:1\n::: x.rs:2:2\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range seedOutputs {
		f.Add([]byte(s))
	}
}
