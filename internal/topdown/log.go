package topdown

import logging "github.com/ipfs/go-log/v2"

// log is the package's named logger, following the teacher's one-logger-
// per-component convention (Mempool, State, ConsensusEngine each hold one).
// ipfs/go-log/v2 hands back a *zap.SugaredLogger, with real Debugw/Warnw/
// Errorw methods, grounded on filecoin-project/venus's FVM boundary code
// (var fvmLog = logging.Logger("fvm")) rather than on the teacher's own
// logger field, which is declared as a stdlib *log.Logger but then calls
// Warnf/Debugf/Errorf on it — methods stdlib's Logger doesn't have.
var log = logging.Logger("topdown")
