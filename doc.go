// Package rrsched simulates a single core preemptive round-robin process
// scheduler over a toy instruction set.
//
// Process definitions are text files whose first line names the process and
// whose remaining lines are instructions (REG=VALUE, E/S, COM, SAIDA). The
// Service facade loads them from a directory, runs the scheduler with the
// configured quantum and stores a log<QQ>.txt report:
//
//	cfg, _ := rrsched.LoadConfig(ctx, afs.New(), "quantum.txt")
//	srv, _ := rrsched.New(rrsched.WithConfig(cfg))
//	aReport, _ := srv.Run(ctx)
//
// The pure core lives in service/scheduler and runtime/execution; loading,
// configuration and report storage are thin collaborators around it.
package rrsched
