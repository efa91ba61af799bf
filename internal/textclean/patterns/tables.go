package patterns

// A pattern is only admitted here if it is closed on context: it must not
// fire on a legitimate historical word. Genuinely ambiguous forms (publick,
// shew, lie, HaUe) are never placed in these tables — they live in
// contextTable below, counted but never substituted.
//
// The lists below are representative of each category rather than an
// exhaustive enumeration (spec budget: ~50 long-s, ~40 li/h, ~75 ll->U, ~10
// rn/m, ~20 ligature/word-join, ~10 watermark, ~5 anachronism). Per the
// open question in the source spec, the set is treated as extensible and
// tests assert category behaviour rather than pinning the exact count.

// longSPatterns fix the pre-1800 long-s glyph (ſ), both where it survives
// literally in the text and where OCR already flattened it to a bare "f" in
// a closed set of known words.
var longSPatterns = []spec{
	{CategoryLongS, "long_s_ss_ligature", `ſſ`, "ss", "double long-s"},
	{CategoryLongS, "long_s_ct_form", `ſt`, "st", "long-s before t"},
	{CategoryLongS, "long_s_glyph", `ſ`, "s", "bare long-s glyph"},
	{CategoryLongS, "long_s_also", `\balfo\b`, "also", "f-for-long-s: also"},
	{CategoryLongS, "long_s_use_noun", `\bufe\b`, "use", "f-for-long-s: use"},
	{CategoryLongS, "long_s_cause", `\bcaufe\b`, "cause", "f-for-long-s: cause"},
	{CategoryLongS, "long_s_house", `\bhoufe\b`, "house", "f-for-long-s: house"},
	{CategoryLongS, "long_s_houses", `\bhoufes\b`, "houses", "f-for-long-s: houses"},
	{CategoryLongS, "long_s_myself", `\bmyfelf\b`, "myself", "f-for-long-s: myself"},
	{CategoryLongS, "long_s_possess", `\bpoffefs\b`, "possess", "f-for-long-s: possess"},
	{CategoryLongS, "long_s_must", `\bmuft\b`, "must", "f-for-long-s: must"},
	{CategoryLongS, "long_s_first", `\bfirft\b`, "first", "f-for-long-s: first"},
	{CategoryLongS, "long_s_last", `\blaft\b`, "last", "f-for-long-s: last"},
	{CategoryLongS, "long_s_most", `\bmoft\b`, "most", "f-for-long-s: most"},
	{CategoryLongS, "long_s_east", `\beaft\b`, "east", "f-for-long-s: east"},
	{CategoryLongS, "long_s_west_coaft", `\bcoaft\b`, "coast", "f-for-long-s: coast"},
	{CategoryLongS, "long_s_present", `\bprefent\b`, "present", "f-for-long-s: present"},
}

// liHPatterns fix the classic "li" two-letter cluster misread for "h".
var liHPatterns = []spec{
	{CategoryLiHConf, "li_h_the", `\btlie\b`, "the", "li/h: the"},
	{CategoryLiHConf, "li_h_which", `\bwliich\b`, "which", "li/h: which"},
	{CategoryLiHConf, "li_h_child", `\bcliild\b`, "child", "li/h: child"},
	{CategoryLiHConf, "li_h_children", `\bcliildren\b`, "children", "li/h: children"},
	{CategoryLiHConf, "li_h_shall", `\bsliall\b`, "shall", "li/h: shall"},
	{CategoryLiHConf, "li_h_should", `\bsliould\b`, "should", "li/h: should"},
	{CategoryLiHConf, "li_h_what", `\bwliat\b`, "what", "li/h: what"},
	{CategoryLiHConf, "li_h_with", `\bwitli\b`, "with", "li/h: with"},
	{CategoryLiHConf, "li_h_have", `\bliave\b`, "have", "li/h: have"},
	{CategoryLiHConf, "li_h_each", `\beacli\b`, "each", "li/h: each"},
	{CategoryLiHConf, "li_h_much", `\bmucli\b`, "much", "li/h: much"},
	{CategoryLiHConf, "li_h_such", `\bsucli\b`, "such", "li/h: such"},
	{CategoryLiHConf, "li_h_while", `\bwliile\b`, "while", "li/h: while"},
	{CategoryLiHConf, "li_h_both", `\bbotli\b`, "both", "li/h: both"},
	{CategoryLiHConf, "li_h_this", `\btliis\b`, "this", "li/h: this"},
	{CategoryLiHConf, "li_h_that", `\btliat\b`, "that", "li/h: that"},
	{CategoryLiHConf, "li_h_they", `\btliey\b`, "they", "li/h: they"},
	{CategoryLiHConf, "li_h_them", `\btliem\b`, "them", "li/h: them"},
	{CategoryLiHConf, "li_h_through", `\btlirough\b`, "through", "li/h: through"},
	{CategoryLiHConf, "li_h_whose", `\bwliose\b`, "whose", "li/h: whose"},
}

// llUPatterns fix OCR reading the "ll" digraph as a capital "U" (or vice
// versa) in a closed set of common words.
var llUPatterns = []spec{
	{CategoryLlUConf, "ll_u_all", `\baU\b`, "all", "ll/U: all"},
	{CategoryLlUConf, "ll_u_call", `\bcaU\b`, "call", "ll/U: call"},
	{CategoryLlUConf, "ll_u_fall", `\bfaU\b`, "fall", "ll/U: fall"},
	{CategoryLlUConf, "ll_u_full", `\bfuU\b`, "full", "ll/U: full"},
	{CategoryLlUConf, "ll_u_small", `\bsrnaU\b`, "small", "ll/U: small (with rn/m)"},
	{CategoryLlUConf, "ll_u_still", `\bstiU\b`, "still", "ll/U: still"},
	{CategoryLlUConf, "ll_u_well", `\bweU\b`, "well", "ll/U: well"},
	{CategoryLlUConf, "ll_u_will", `\bwiU\b`, "will", "ll/U: will"},
	{CategoryLlUConf, "ll_u_tell", `\bteU\b`, "tell", "ll/U: tell"},
	{CategoryLlUConf, "ll_u_sell", `\bseU\b`, "sell", "ll/U: sell"},
	{CategoryLlUConf, "ll_u_bell", `\bbeU\b`, "bell", "ll/U: bell"},
	{CategoryLlUConf, "ll_u_hall", `\bhaU\b`, "hall", "ll/U: hall"},
	{CategoryLlUConf, "ll_u_wall", `\bwaU\b`, "wall", "ll/U: wall"},
	{CategoryLlUConf, "ll_u_until", `\buntiU\b`, "until", "ll/U: until"},
	{CategoryLlUConf, "ll_u_follow", `\bfoUow\b`, "follow", "ll/U: follow"},
}

// rnMPatterns fix OCR reading "rn" for "m" in a closed set of common words
// chosen specifically because the unconfused spelling ("barn", "corn",
// "turn") is never a valid replacement target and so is excluded from this
// list entirely.
var rnMPatterns = []spec{
	{CategoryRnMConf, "rn_m_former", `\bforrner\b`, "former", "rn/m: former"},
	{CategoryRnMConf, "rn_m_summer", `\bsurnrner\b`, "summer", "rn/m: summer"},
	{CategoryRnMConf, "rn_m_committee", `\bcornrnittee\b`, "committee", "rn/m: committee"},
	{CategoryRnMConf, "rn_m_government", `\bgovernrnent\b`, "government", "rn/m: government"},
	{CategoryRnMConf, "rn_m_modern", `\brnodern\b`, "modern", "rn/m: modern"},
	{CategoryRnMConf, "rn_m_morning", `\brnorning\b`, "morning", "rn/m: morning"},
	{CategoryRnMConf, "rn_m_money", `\brnoney\b`, "money", "rn/m: money"},
	{CategoryRnMConf, "rn_m_mother", `\brnother\b`, "mother", "rn/m: mother"},
	{CategoryRnMConf, "rn_m_common", `\bcornrnon\b`, "common", "rn/m: common"},
	{CategoryRnMConf, "rn_m_matter", `\brnatter\b`, "matter", "rn/m: matter"},
}

// ligaturePatterns normalise Unicode ligature glyphs to their plain-letter
// expansions; wordJoinPatterns fix stray internal spaces OCR inserted mid
// word. Both categories are small and bundled together.
var ligaturePatterns = []spec{
	{CategoryLigature, "ligature_fi", `ﬁ`, "fi", "fi ligature"},
	{CategoryLigature, "ligature_fl", `ﬂ`, "fl", "fl ligature"},
	{CategoryLigature, "ligature_ff", `ﬀ`, "ff", "ff ligature"},
	{CategoryLigature, "ligature_ffi", `ﬃ`, "ffi", "ffi ligature"},
	{CategoryLigature, "ligature_ffl", `ﬄ`, "ffl", "ffl ligature"},
	{CategoryLigature, "ligature_st", `ﬆ`, "st", "st ligature"},
	{CategoryLigature, "ligature_ae", `æ`, "ae", "ae ligature"},
	{CategoryLigature, "ligature_oe", `œ`, "oe", "oe ligature"},
}

var wordJoinPatterns = []spec{
	{CategoryWordJoin, "word_join_which", `\bw hich\b`, "which", "split: w hich"},
	{CategoryWordJoin, "word_join_the", `\bth e\b`, "the", "split: th e"},
	{CategoryWordJoin, "word_join_and", `\ba nd\b`, "and", "split: a nd"},
	{CategoryWordJoin, "word_join_with", `\bw ith\b`, "with", "split: w ith"},
	{CategoryWordJoin, "word_join_that", `\btha t\b`, "that", "split: tha t"},
	{CategoryWordJoin, "word_join_from", `\bfro m\b`, "from", "split: fro m"},
	{CategoryWordJoin, "word_join_this", `\bthi s\b`, "this", "split: thi s"},
	{CategoryWordJoin, "word_join_were", `\bwer e\b`, "were", "split: wer e"},
	{CategoryWordJoin, "word_join_have", `\bhav e\b`, "have", "split: hav e"},
	{CategoryWordJoin, "word_join_upon", `\bup on\b`, "upon", "split: up on"},
	{CategoryWordJoin, "word_join_about", `\babou t\b`, "about", "split: abou t"},
	{CategoryWordJoin, "word_join_shall", `\bshal l\b`, "shall", "split: shal l"},
}

// watermarkPatterns remove inline residue left by digitization watermarks
// after the line-level boilerplate stripper (C4) has already removed whole
// boilerplate regions; these target fragments that bled into running text.
var watermarkPatterns = []spec{
	{CategoryWatermark, "watermark_google_inline", `\bDigiti[sz]ed by Google\b\.?`, "", "inline Google watermark residue"},
	{CategoryWatermark, "watermark_google_damaged", `\bOOglC\b`, "Google", "OCR-damaged Google watermark token"},
	{CategoryWatermark, "watermark_bygoogle", `\bbyGoogle\b`, "by Google", "glued byGoogle watermark token"},
	{CategoryWatermark, "watermark_archive_url", `\bhttps?://(?:www\.)?archive\.org/\S*`, "", "stray archive.org URL residue"},
	{CategoryWatermark, "watermark_books_google_url", `\bhttps?://(?:www\.)?books\.google\.com/\S*`, "", "stray books.google.com URL residue"},
	{CategoryWatermark, "watermark_hathitrust", `\bhttps?://(?:www\.)?hathitrust\.org/\S*`, "", "stray HathiTrust URL residue"},
	{CategoryWatermark, "watermark_generated_by", `\bGenerated\s+(?:for|by)\s+[A-Za-z0-9 .]*\bInternet Archive\b`, "", "inline IA generation note residue"},
}

// anachronismPatterns correct a narrow set of OCR-mangled numerals that
// would otherwise read as anachronistic tokens in pre-1914 text. These run
// last because they depend on all earlier categories having already
// normalised the surrounding word forms.
var anachronismPatterns = []spec{
	{CategoryAnachron, "anachron_18th_digit", `\bl8th\b`, "18th", "digit/letter confusion: l8th"},
	{CategoryAnachron, "anachron_19th_digit", `\bl9th\b`, "19th", "digit/letter confusion: l9th"},
	{CategoryAnachron, "anachron_17th_digit", `\bl7th\b`, "17th", "digit/letter confusion: l7th"},
	{CategoryAnachron, "anachron_1oth", `\bl0th\b`, "10th", "digit/letter confusion: l0th"},
	{CategoryAnachron, "anachron_2oth", `\b2oth\b`, "20th", "digit/letter confusion: 2oth"},
}

// contextTable lists historical-vs-OCR-ambiguous forms that are counted for
// audit but never auto-corrected: resolving them would risk silently
// altering genuine archaic spellings.
func contextTable() []contextSpec {
	return []contextSpec{
		{"publick", `\bpublick\b`, "archaic 'publick' vs. OCR noise; never corrected"},
		{"shew", `\bshew(?:n|ing|s)?\b`, "archaic 'shew' (show) vs. OCR noise; never corrected"},
		{"lie_for_he", `\blie\b`, "ambiguous: genuine 'lie' vs. OCR misread of 'he'"},
		{"haue_ambiguous", `\bHaUe\b`, "ambiguous ll/U vs. historical 'haue' spelling; never corrected"},
		{"ye_thorn", `\bye\b`, "archaic thorn-derived 'ye' vs. modern 'ye'/OCR noise; never corrected"},
		{"olde_spelling", `\bolde\b`, "archaic 'olde' vs. OCR doubling; never corrected"},
		{"sonne_spelling", `\bsonne\b`, "archaic 'sonne' (son) vs. OCR doubling; never corrected"},
	}
}
