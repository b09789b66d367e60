package stepwise_test

import (
	"log"
	"time"

	"github.com/stepwise-sh/stepwise"
)

func ExampleStart() {
	_ = func() {
		sess, err := stepwise.Start("./wizard onboard --install-daemon",
			stepwise.WithSize(120, 40),
			stepwise.WithTimeout(2*time.Minute),
		)
		if err != nil {
			log.Fatal(err)
		}
		defer sess.Close()

		if _, err := sess.Expect(stepwise.Pattern(`Continue\?`)); err != nil {
			log.Fatal(err)
		}
		_ = sess.Send("y")
	}
}

func ExampleRunScript() {
	_ = func() {
		sess, err := stepwise.Start("./wizard onboard")
		if err != nil {
			log.Fatal(err)
		}
		defer sess.Close()

		code, err := stepwise.RunScript(sess, stepwise.Script{
			{Expect: `Continue\?`, Send: "y", Desc: "confirm continue"},
			{Expect: `Select channel`, Send: stepwise.Up + stepwise.Enter, Desc: "arrow up + enter"},
		})
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("wizard exited with status %d", code)
	}
}
