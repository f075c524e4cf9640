package llm

// Respuestas enlatadas. Mantienen el formato exacto que los parsers del
// servidor esperan, así el e2e recorre el mismo código que en producción.

const skillsJSON = `{
  "Technical Skills": ["Python", "SQL", "Go"],
  "Soft Skills": ["Communication", "Leadership"],
  "Industry Knowledge": ["Fintech"],
  "Tools & Software": ["Docker", "Excel"]
}`

const gapAnalysis = `1. Missing critical skills: cloud platforms (AWS or GCP) and container orchestration.
2. Skills that need improvement: SQL query optimization for large datasets.
3. Emerging skills to consider: data contracts and streaming pipelines.
4. Priorities: cloud platforms (High), orchestration (Medium), streaming (Low).`

const learningRecs = `1. Complete a hands-on AWS fundamentals course and deploy one real pipeline.
2. Rebuild an existing batch job as a streaming job to learn the tradeoffs.
3. Join a local data engineering meetup and present one small project.
4. Schedule two hours a week for SQL performance drills.`

const jobAnalysis = `Match score: 78/100

This is a strong match. The candidate's background lines up with the core requirements,
and the team size suggests room to take ownership early. Skill alignment is good on the
data side; the gap is production cloud operations. Growth potential is high if they lean
into infrastructure work. No red flags beyond a vague on-call policy.`

const applicationTips = `1. Mirror the exact phrasing of the top three requirements in your resume.
2. Lead with a measurable outcome from your last role.
3. Prepare one question about the team's roadmap for the interview.
4. Follow up within 48 hours with a short, specific note.
5. Keep a log of every application and its status.`

const resumeMatchJSON = `{
  "match_score": 72,
  "strengths": ["solid SQL foundation", "clear project ownership"],
  "gaps": ["no production cloud experience", "limited team leadership"],
  "recommendations": ["ship one cloud-deployed project", "mentor a junior colleague"],
  "summary": "A capable engineer whose resume supports the stated goal. Closing the cloud gap would make the case convincing."
}`

const profileAnalysis = `Strong technical profile with a clear data focus. Transferable strengths include
analytical thinking and stakeholder communication. The stated interests align with roles
that blend engineering and analysis. Main development area: production cloud systems.
Market timing is favorable for data-adjacent engineering roles.`

const careerSuggestions = `Career Path 1: Data Engineer
Industry: Technology
Why it fits: strong SQL and pipeline background
Salary range: $110,000 - $150,000
Timeline: 6-9 months

Career Path 2: Analytics Engineer
Industry: Technology
Why it fits: blends analysis with engineering strengths
Salary range: $100,000 - $140,000
Timeline: 6 months

Career Path 3: Machine Learning Engineer
Industry: Technology
Why it fits: builds on Python and data foundations
Salary range: $130,000 - $170,000
Timeline: 12-18 months`

const careerRoadmap = `Month 1-3: Close the highest-priority gap with one focused course and a small
shipped project. Month 4-6: take on stretch work in the current role that mirrors the
target role. Month 7-9: build a public portfolio piece and start targeted networking.
Month 10-12: interview actively, using the portfolio as the anchor of every conversation.`

const resumeContent = `Summary:
Results-driven engineer who turns messy data into reliable products.

Skills:
- Python
- SQL
- Docker

Experience:
TechCorp, 2019-2024. Built and operated batch pipelines serving 40+ internal teams.

Education:
BSc Computer Science, State University

Projects:
Open-source ETL framework with 300+ stars.`

const coverLetter = `Dear Hiring Manager,

I am writing to apply for this role because it sits exactly where my background and
ambitions meet. In my last position I owned the data platform end to end, cutting
pipeline failures by half while the team doubled its usage.

I would bring the same ownership to your team, starting with the reliability work your
posting highlights. I would welcome the chance to discuss it.

Sincerely,
The Candidate`

const linkedInSummary = `I build data systems that people can actually rely on. Over the past five years I have
taken pipelines from fragile scripts to monitored, documented platforms, and I enjoy the
unglamorous work that makes that possible. Currently focused on cloud-native tooling and
helping teams make better decisions with their own data. Always happy to talk shop.`

const mentorReply = `That is a solid question to be asking at this stage. Based on what you have shared, I
would focus on one concrete next step rather than trying to change everything at once:
pick the skill that appears most often in postings for your target role and practice it
on a real project this month. Keep notes on what you learn, and revisit the plan in four
weeks to see what has moved.`
