// Package audit records every allow, deny, and administrative-change
// decision: who acted, on what, and what changed.
//
// Records are append-only. The Recorder offers two durability modes:
// Record is synchronous and must gate administrative mutations - if the
// audit write fails, the mutation is aborted; TryRecord is best-effort
// for read-path denial events, logging storage failures instead of
// propagating them into the caller's control flow.
//
//	recorder := audit.NewRecorder(audit.NewPgStorage(pool), log)
//
//	// mutation path: fail closed on audit failure
//	if err := recorder.Record(ctx, audit.Record{
//	    ActorID:       actor.UserID,
//	    ActorRole:     string(actor.Role),
//	    Action:        "rollout_policy.update",
//	    TargetType:    "country",
//	    TargetID:      "IN",
//	    PreviousValue: prevJSON,
//	    NewValue:      nextJSON,
//	    Decision:      audit.DecisionApplied,
//	}); err != nil {
//	    return err // do not apply the mutation
//	}
//
// High-volume read-denial recording can wrap storage in an AsyncWriter,
// which batches writes and falls back to synchronous storage when its
// buffer fills so records are never dropped.
package audit
