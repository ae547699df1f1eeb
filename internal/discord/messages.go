package discord

// Embed colors
const (
	ColorMatchPoll = 0x3498db // Blue
	ColorBonusPoll = 0x9b59b6 // Purple
	ColorSuccess   = 0x2ecc71 // Green
	ColorStandings = 0xf1c40f // Yellow
	ColorModAction = 0x95a5a6 // Grey
)

// Friendly message constants for Discord responses
const (
	MsgInvalidSelection = "🤔 **Not An Option**\nThat pick doesn't exist on this poll."

	MsgAlreadySettled = "🔒 **Result Already In**\nThis match has already been settled."
	MsgMatchNotFound  = "❓ **Match Not Found**\nMaybe check the teams and date?"

	MsgQuestionNotFound   = "❓ **Question Not Found**"
	MsgAnswerLimitReached = "✋ **Answer Limit Reached**\nRemove a pick before adding another."
	MsgAlreadyFinalized   = "🔒 **Question Finalized**\nAnswers are locked in."

	MsgUserNotFound = "👤 **User Not Found**\nNo predictions on record yet?"

	MsgGenericError = "❌ Something went wrong."
)
