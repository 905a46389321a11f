package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/admitscore/internal/domain/model"
)

func execute(args ...string) (string, error) {
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	base := []string{
		"--conditions", "../../data/conditions.yaml",
		"--tables", "../../data/tables.yaml",
		"--cutoffs", "../../data/cutoffs.yaml",
	}
	cmd.SetArgs(append(append([]string{}, args[:1]...), append(base, args[1:]...)...))
	err := cmd.Execute()
	return out.String(), err
}

func TestPatternsCommand(t *testing.T) {
	convey.Convey("Given the sample catalog", t, func() {
		convey.Convey("When listing patterns as a table", func() {
			out, err := execute("patterns")
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "K1_M1_E1_I1_H0_F0")
			convey.So(out, convey.ShouldContainSubstring, "patterns over 5 universities")
		})

		convey.Convey("When listing patterns as JSON", func() {
			out, err := execute("patterns", "--json")
			convey.So(err, convey.ShouldBeNil)
			var groups map[string][]string
			convey.So(json.Unmarshal([]byte(out), &groups), convey.ShouldBeNil)
			convey.So(groups["K1_M1_E1_I1_H0_F0"], convey.ShouldResemble, []string{"EW-RATIO", "SG-PCT", "YS-STD"})
		})
	})
}

func TestScoreCommand(t *testing.T) {
	convey.Convey("Given the sample candidate", t, func() {
		convey.Convey("When scoring every university", func() {
			out, err := execute("score", "--candidate", "../../data/candidate.yaml")
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "UNIVERSITY")
			convey.So(out, convey.ShouldContainSubstring, "DH-HUM")
			convey.So(out, convey.ShouldContainSubstring, "YS-STD")
		})

		convey.Convey("When scoring one university as JSON", func() {
			out, err := execute("score", "-c", "../../data/candidate.yaml", "-u", "DH-HUM", "--json")
			convey.So(err, convey.ShouldBeNil)
			var evs []model.Evaluation
			convey.So(json.Unmarshal([]byte(out), &evs), convey.ShouldBeNil)
			convey.So(evs, convey.ShouldHaveLength, 1)
			convey.So(evs[0].Result.Success, convey.ShouldBeTrue)
			convey.So(evs[0].CandidateID, convey.ShouldEqual, "sample-001")
		})

		convey.Convey("When the candidate file is JSON", func() {
			path := filepath.Join(t.TempDir(), "cand.json")
			body := `{"id":"j1","scores":[{"kind":"korean","subject":"국어","standard_score":131,"grade":1}]}`
			convey.So(os.WriteFile(path, []byte(body), 0o600), convey.ShouldBeNil)
			cand, err := readCandidate(path)
			convey.So(err, convey.ShouldBeNil)
			convey.So(cand.ID, convey.ShouldEqual, "j1")
			convey.So(cand.Scores[0].StandardScore, convey.ShouldEqual, 131)
		})

		convey.Convey("When the candidate flag is missing", func() {
			_, err := execute("score")
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestLoadCommand(t *testing.T) {
	convey.Convey("Given no admitd listening", t, func() {
		_, err := execute("load", "--url", "http://127.0.0.1:1", "-n", "1", "--timeout", "200ms")
		convey.So(err, convey.ShouldNotBeNil)
	})
}
