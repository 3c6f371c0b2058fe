package constant

// Prompt templates for the discovery pipeline. All of them demand strict
// JSON or single-token output so parsing stays cheap and deterministic
// parsing failures can fall back to heuristics.

const IntentExtractionPromptV1 = `You are a shopping intent classifier. Analyze the user message and extract what product (if any) the user is looking for.

USER MESSAGE: %s

Respond with ONLY a JSON object, no markdown, no explanation:
{
  "productDetected": true or false,
  "productName": "the specific product mentioned, or empty string",
  "brand": "the brand explicitly mentioned, or empty string",
  "category": "one broad category like gaming, fashion, sports, or empty string",
  "keywords": ["lowercase", "search", "terms"],
  "intent": "buy" or "browse" or "compare" or "ask"
}

Rules:
- productDetected is true only when the user names a concrete product or product type.
- brand must be copied from the message, never guessed.
- keywords are the searchable terms from the message, lowercased.`

const RelevanceCheckPromptV1 = `User is searching for: "%s"

Candidate product:
Title: %s
Brand: %s
Description: %s

Is this product a good match for the search, considering product type, brand, variant, and features? Answer with exactly one word: YES or NO.`

const SegmentationPromptV1 = `You are a product demographic classifier for a shop serving ages 10-21.

Segment archetypes:
- AGE_10_12: pre-teens; toys, school gear, beginner hobbies, family games.
- AGE_13_15: young teens; gaming, trends, social-media driven fashion, sports.
- AGE_16_18: older teens; electronics, style identity, exam prep, first jobs.
- AGE_19_21: young adults; dorm life, professional gear, fitness, travel.

PRODUCT:
Title: %s
Description: %s
Brand: %s
Category: %s
Price: %s

Classify the product. Respond with ONLY a JSON object, no markdown:
{
  "ageRanges": ["one or more of AGE_10_12, AGE_13_15, AGE_16_18, AGE_19_21"],
  "gender": "MALE" or "FEMALE" or "UNISEX",
  "confidence": 0.0 to 1.0,
  "suggestedCategories": ["lowercase category tags"],
  "reasoning": "one short sentence"
}

STRICT CONSTRAINTS:
- ageRanges must be non-empty and only contain the four canonical values.
- gender must be exactly one of the three canonical values.
- confidence must be a number between 0 and 1.`
