/*
Package runner validates many input strings against one automaton.

Inputs arrive one per line. Each line is sanitized and tokenized, then
simulated independently: a line that fails never aborts the batch. Results
stream through a Handler, which decides how they are presented.

# Usage

	r := runner.New(
		runner.WithHandler(runner.NewTextHandler(os.Stdout)),
		runner.WithLogger(logger),
	)

	summary, err := r.Run(ctx, a, os.Stdin)
	if err != nil {
		log.Fatal(err)
	}
*/
package runner
