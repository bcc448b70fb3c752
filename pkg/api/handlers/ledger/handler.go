package ledgerhandler

import (
	"net/http"

	apierrors "github.com/Roll-Play/votechain/pkg/api/error"
	"github.com/Roll-Play/votechain/pkg/api/middlewares"
	"github.com/Roll-Play/votechain/pkg/ledger"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type LedgerHandler struct {
	chain    *ledger.Chain
	logger   *zap.Logger
	validate *validator.Validate
}

func New(chain *ledger.Chain, logger *zap.Logger) *LedgerHandler {
	return &LedgerHandler{
		chain:    chain,
		logger:   logger,
		validate: validator.New(),
	}
}

type BlockchainResponse struct {
	Blocks []ledger.Block `json:"blocks"`
}

type PostVoteRequest struct {
	VoterID     string `json:"voterId" validate:"required"`
	CandidateID string `json:"candidateId" validate:"required"`
	Signature   string `json:"signature"`
}

type ValidateResponse struct {
	IsValid bool `json:"isValid"`
}

func (lh *LedgerHandler) GetBlockchain(c echo.Context) error {
	blocks, err := lh.chain.Blocks(c.Request().Context())
	if err != nil {
		return lh.serverError(c, err)
	}

	return c.JSON(http.StatusOK, BlockchainResponse{Blocks: blocks})
}

// PostVote accepts a ballot. The response is the stored vote, or the mined
// block when this vote filled the pending pool.
func (lh *LedgerHandler) PostVote(c echo.Context) error {
	request := new(PostVoteRequest)
	if err := c.Bind(request); err != nil {
		lh.logger.Debug("Client error",
			zap.String("cause", err.Error()),
		)
		return apierrors.CustomError(c,
			http.StatusBadRequest,
			apierrors.BadRequestError,
		)
	}

	if voterID, ok := c.Get(middlewares.VoterContextKey).(string); ok && voterID != "" {
		request.VoterID = voterID
	}

	if err := lh.validate.Struct(request); err != nil {
		lh.logger.Debug("Client error",
			zap.String("cause", err.Error()),
		)
		return apierrors.CustomError(c,
			http.StatusBadRequest,
			apierrors.InvalidVoteError,
		)
	}

	result, err := lh.chain.AddVote(c.Request().Context(), ledger.Vote{
		VoterID:     request.VoterID,
		CandidateID: request.CandidateID,
		Signature:   request.Signature,
	})
	if err != nil {
		return lh.serverError(c, err)
	}

	if result.Block != nil {
		return c.JSON(http.StatusOK, result.Block)
	}

	return c.JSON(http.StatusOK, result.Vote)
}

func (lh *LedgerHandler) GetValidate(c echo.Context) error {
	valid, err := lh.chain.Validate(c.Request().Context())
	if err != nil {
		return lh.serverError(c, err)
	}

	return c.JSON(http.StatusOK, ValidateResponse{IsValid: valid})
}

func (lh *LedgerHandler) GetStats(c echo.Context) error {
	stats, err := lh.chain.Stats(c.Request().Context())
	if err != nil {
		return lh.serverError(c, err)
	}

	return c.JSON(http.StatusOK, stats)
}

func (lh *LedgerHandler) serverError(c echo.Context, err error) error {
	lh.logger.Error("Server error",
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return apierrors.CustomError(c,
		http.StatusInternalServerError,
		apierrors.InternalServerError,
	)
}
